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

const PlatformKick = domain.PlatformID("kick")

type KickClient struct {
	cfg      config.PlatformConfig
	http     *http.Client
	handles  ports.HandleDirectory
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg retry.Config
	logger   *zap.SugaredLogger
}

func NewKickClient(cfg config.PlatformConfig, handles ports.HandleDirectory, logger *zap.SugaredLogger) *KickClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KickClient{
		cfg:      cfg,
		http:     &http.Client{Timeout: timeout},
		handles:  handles,
		breaker:  circuitbreaker.New(circuitbreaker.DefaultConfig()),
		retryCfg: retry.DefaultConfig(),
		logger:   logger,
	}
}

func (c *KickClient) Platform() domain.PlatformID {
	return PlatformKick
}

// Kick's channel endpoint is public, so a token is not required.
func (c *KickClient) IsConfigured() bool {
	return c.cfg.Enabled && c.cfg.APIBase != ""
}

func (c *KickClient) ResolveHostIdentifier(ctx context.Context, userID domain.UserID) (string, error) {
	return c.handles.Lookup(ctx, userID, PlatformKick)
}

type kickChannelResponse struct {
	Livestream *struct {
		ID int64 `json:"id"`
	} `json:"livestream"`
}

func (c *KickClient) GetLiveStatus(ctx context.Context, identifier string) (*domain.LiveStatus, error) {
	ctx, span := tracing.TracePlatformCall(ctx, string(PlatformKick), "live_status")
	defer span.End()

	endpoint := fmt.Sprintf("%s/channels/%s", c.cfg.APIBase, url.PathEscape(identifier))

	status, err := retry.DoWithResult(ctx, c.retryCfg, func() (*domain.LiveStatus, error) {
		var result *domain.LiveStatus
		execErr := c.breaker.Execute(ctx, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}

			resp, err := c.http.Do(req)
			if err != nil {
				return fmt.Errorf("kick channel request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				result = nil
				return nil
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("kick channel returned status %d", resp.StatusCode)
			}

			var parsed kickChannelResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return fmt.Errorf("failed to decode kick channel response: %w", err)
			}

			if parsed.Livestream == nil {
				result = &domain.LiveStatus{ID: identifier, State: "offline"}
				return nil
			}
			result = &domain.LiveStatus{
				ID:    fmt.Sprintf("%d", parsed.Livestream.ID),
				State: domain.LiveStateLive,
			}
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
