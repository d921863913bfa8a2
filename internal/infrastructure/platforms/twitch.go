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

const PlatformTwitch = domain.PlatformID("twitch")

// TwitchClient talks to the Helix API. It resolves a host's login name through
// the handle directory and checks the streams endpoint for a live broadcast.
type TwitchClient struct {
	cfg      config.PlatformConfig
	http     *http.Client
	handles  ports.HandleDirectory
	breaker  *circuitbreaker.CircuitBreaker
	retryCfg retry.Config
	logger   *zap.SugaredLogger
}

func NewTwitchClient(cfg config.PlatformConfig, handles ports.HandleDirectory, logger *zap.SugaredLogger) *TwitchClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TwitchClient{
		cfg:      cfg,
		http:     &http.Client{Timeout: timeout},
		handles:  handles,
		breaker:  circuitbreaker.New(circuitbreaker.DefaultConfig()),
		retryCfg: retry.DefaultConfig(),
		logger:   logger,
	}
}

func (c *TwitchClient) Platform() domain.PlatformID {
	return PlatformTwitch
}

func (c *TwitchClient) IsConfigured() bool {
	return c.cfg.Enabled && c.cfg.APIBase != "" && c.cfg.Token != ""
}

func (c *TwitchClient) ResolveHostIdentifier(ctx context.Context, userID domain.UserID) (string, error) {
	return c.handles.Lookup(ctx, userID, PlatformTwitch)
}

type twitchStreamsResponse struct {
	Data []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

func (c *TwitchClient) GetLiveStatus(ctx context.Context, identifier string) (*domain.LiveStatus, error) {
	ctx, span := tracing.TracePlatformCall(ctx, string(PlatformTwitch), "live_status")
	defer span.End()

	endpoint := fmt.Sprintf("%s/streams?user_login=%s", c.cfg.APIBase, url.QueryEscape(identifier))

	status, err := retry.DoWithResult(ctx, c.retryCfg, func() (*domain.LiveStatus, error) {
		var result *domain.LiveStatus
		execErr := c.breaker.Execute(ctx, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Client-Id", c.cfg.ClientID)
			req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

			resp, err := c.http.Do(req)
			if err != nil {
				return fmt.Errorf("twitch streams request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("twitch streams returned status %d", resp.StatusCode)
			}

			var parsed twitchStreamsResponse
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return fmt.Errorf("failed to decode twitch streams response: %w", err)
			}

			// No entries means the channel is known but not broadcasting
			if len(parsed.Data) == 0 {
				result = &domain.LiveStatus{ID: identifier, State: "offline"}
				return nil
			}

			state := parsed.Data[0].Type
			if state == "" {
				state = "offline"
			}
			result = &domain.LiveStatus{ID: parsed.Data[0].ID, State: state}
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
