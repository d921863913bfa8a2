package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"costream/internal/core/domain"
	"costream/internal/core/ports"
	"costream/pkg/circuitbreaker"
	"costream/pkg/config"
	"costream/pkg/retry"
	"costream/pkg/tracing"

	"go.uber.org/zap"
)

const PlatformYouTube = domain.PlatformID("youtube")

// YouTubeClient checks for active live broadcasts on a channel through the
// Data API search endpoint.
type YouTubeClient struct {
	cfg      config.PlatformConfig
	http     *http.Client
	handles  ports.HandleDirectory
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg retry.Config
	logger   *zap.SugaredLogger
}

func NewYouTubeClient(cfg config.PlatformConfig, handles ports.HandleDirectory, logger *zap.SugaredLogger) *YouTubeClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &YouTubeClient{
		cfg:      cfg,
		http:     &http.Client{Timeout: timeout},
		handles:  handles,
		breaker:  circuitbreaker.New(circuitbreaker.DefaultConfig()),
		retryCfg: retry.DefaultConfig(),
		logger:   logger,
	}
}

func (c *YouTubeClient) Platform() domain.PlatformID {
	return PlatformYouTube
}

func (c *YouTubeClient) IsConfigured() bool {
	return c.cfg.Enabled && c.cfg.APIBase != "" && c.cfg.Token != ""
}

func (c *YouTubeClient) ResolveHostIdentifier(ctx context.Context, userID domain.UserID) (string, error) {
	return c.handles.Lookup(ctx, userID, PlatformYouTube)
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

func (c *YouTubeClient) GetLiveStatus(ctx context.Context, identifier string) (*domain.LiveStatus, error) {
	ctx, span := tracing.TracePlatformCall(ctx, string(PlatformYouTube), "live_status")
	defer span.End()

	endpoint := fmt.Sprintf("%s/search?part=snippet&channelId=%s&eventType=live&type=video&key=%s",
		c.cfg.APIBase, url.QueryEscape(identifier), url.QueryEscape(c.cfg.Token))

	status, err := retry.DoWithResult(ctx, c.retryCfg, func() (*domain.LiveStatus, error) {
		var result *domain.LiveStatus
		execErr := c.breaker.Execute(ctx, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return fmt.Errorf("youtube search request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				// Channel unknown to the platform
				result = nil
				return nil
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("youtube search returned status %d", resp.StatusCode)
			}

			var parsed youtubeSearchResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return fmt.Errorf("failed to decode youtube search response: %w", err)
			}

			if len(parsed.Items) == 0 {
				result = &domain.LiveStatus{ID: identifier, State: "offline"}
				return nil
			}
			result = &domain.LiveStatus{ID: parsed.Items[0].ID.VideoID, State: domain.LiveStateLive}
			return nil
		})
		return result, execErr
	})
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	return status, nil
}
