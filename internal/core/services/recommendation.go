package services

import (
	"fmt"

	"costream/internal/core/domain"
	"costream/pkg/utils"
)

const audienceOverlapThreshold = 0.35

// GenerateStrategicRecommendations derives human-readable heuristics from the
// event's attributes and candidate matches. It is a pure function: the output
// order follows a fixed rule-evaluation order, not priority, and the list may
// be empty.
func (r *eventRegistry) GenerateStrategicRecommendations(event *domain.StreamEvent, matches []domain.PartnerMatch) []string {
	recommendations := []string{}

	// Rule 1: audience overlap
	if len(matches) > 0 {
		total := 0.0
		best := matches[0]
		for _, match := range matches {
			total += match.AudienceOverlap
			if match.AudienceOverlap > best.AudienceOverlap {
				best = match
			}
		}
		avg := total / float64(len(matches))
		if avg >= audienceOverlapThreshold {
			recommendations = append(recommendations,
				fmt.Sprintf("strong audience overlap across candidates (avg %.0f%%); co-promote the event on both channels", avg*100))
		} else if best.AudienceOverlap >= audienceOverlapThreshold {
			recommendations = append(recommendations,
				fmt.Sprintf("partner %s shares %.0f%% of your audience; prioritize them for this event", best.DisplayName, best.AudienceOverlap*100))
		}
	}

	// Rule 2: content type cues
	switch event.ContentType {
	case "gaming":
		recommendations = append(recommendations,
			"gaming events retain viewers better with a co-commentator; assign a co_stream role early")
	case "talk_show", "podcast":
		recommendations = append(recommendations,
			"conversation formats benefit from a moderator; invite a collaborator to manage chat")
	case "music":
		recommendations = append(recommendations,
			"music events peak in the first 15 minutes; schedule platform announcements before going live")
	}

	// Rule 3: multi-platform cues
	if len(event.Platforms) > 1 {
		recommendations = append(recommendations,
			fmt.Sprintf("broadcasting to %d platforms; verify every collaborator has linked handles before the session starts", len(event.Platforms)))
	}

	// Rule 4: prime-time slot
	if utils.IsPrimeTime(event.ScheduledAt) {
		recommendations = append(recommendations,
			"scheduled in a prime-time slot; expect higher concurrent viewers and line up moderation support")
	}

	return recommendations
}
