package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/pkg/retry"

	"go.uber.org/zap"
)

// HTTPMatchFinder calls the external matching service. The candidate list is
// passed through untouched; ranking happens on the remote side.
type HTTPMatchFinder struct {
	endpoint string
	http     *http.Client
	retryCfg retry.Config
	logger   *zap.SugaredLogger
}

func NewHTTPMatchFinder(endpoint string, timeout time.Duration, logger *zap.SugaredLogger) *HTTPMatchFinder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPMatchFinder{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		retryCfg: retry.DefaultConfig(),
		logger:   logger,
	}
}

var _ ports.MatchFinder = (*HTTPMatchFinder)(nil)

type matchRequestBody struct {
	UserID       string   `json:"user_id"`
	InterestTags []string `json:"interest_tags"`
	MaxResults   int      `json:"max_results"`
	Urgency      string   `json:"urgency"`
}

type matchResponseBody struct {
	Partners []domain.PartnerMatch `json:"partners"`
}

func (m *HTTPMatchFinder) FindPartners(ctx context.Context, req domain.MatchRequest) ([]domain.PartnerMatch, error) {
	body, err := json.Marshal(matchRequestBody{
		UserID:       string(req.UserID),
		InterestTags: req.InterestTags,
		MaxResults:   req.MaxResults,
		Urgency:      req.Urgency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal match request: %w", err)
	}

	return retry.DoWithResult(ctx, m.retryCfg, func() ([]domain.PartnerMatch, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := m.http.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("matching service request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("matching service returned status %d", resp.StatusCode)
		}

		var parsed matchResponseBody
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return nil, fmt.Errorf("failed to decode matching response: %w", err)
		}

		return parsed.Partners, nil
	})
}
