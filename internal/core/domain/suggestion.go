package domain

import "time"

// MatchRequest is what the external matching collaborator consumes.
type MatchRequest struct {
	UserID       UserID
	InterestTags []string
	MaxResults   int
	Urgency      string
}

// PartnerMatch is treated opaquely except for AudienceOverlap, which feeds the
// strategic recommendation heuristics.
type PartnerMatch struct {
	UserID          UserID   `json:"user_id"`
	DisplayName     string   `json:"display_name"`
	AudienceOverlap float64  `json:"audience_overlap"`
	SharedTags      []string `json:"shared_tags"`
}

// SchedulingRecommendation proposes when and how long to run the event.
// Timezone coverage is a best-effort summary, not a guarantee.
type SchedulingRecommendation struct {
	ProposedStart    time.Time     `json:"proposed_start"`
	Duration         time.Duration `json:"duration"`
	TimezoneCoverage string        `json:"timezone_coverage"`
}

// CollaborationSuggestions bundles partner candidates, a scheduling
// recommendation and human-readable strategic hints.
type CollaborationSuggestions struct {
	Partners   []PartnerMatch           `json:"partners"`
	Scheduling SchedulingRecommendation `json:"scheduling"`
	Strategic  []string                 `json:"strategic"`
}
