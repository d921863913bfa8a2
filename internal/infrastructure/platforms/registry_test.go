package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"costream/internal/core/domain"
	"costream/pkg/config"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	handles := NewMemoryHandleDirectory()
	logger := zap.NewNop().Sugar()

	registry.Register(NewTwitchClient(config.PlatformConfig{}, handles, logger))
	registry.Register(NewKickClient(config.PlatformConfig{}, handles, logger))

	client, ok := registry.Client(PlatformTwitch)
	require.True(t, ok)
	assert.Equal(t, PlatformTwitch, client.Platform())

	_, ok = registry.Client("mixer")
	assert.False(t, ok)

	assert.Len(t, registry.Platforms(), 2)
}

func TestHandleDirectoryLookup(t *testing.T) {
	handles := NewMemoryHandleDirectory()
	handles.Register("user_1", PlatformTwitch, "streamer_one")

	got, err := handles.Lookup(context.Background(), "user_1", PlatformTwitch)
	require.NoError(t, err)
	assert.Equal(t, "streamer_one", got)

	// Missing handles come back empty, not as errors
	got, err = handles.Lookup(context.Background(), "user_1", PlatformKick)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = handles.Lookup(context.Background(), "user_2", PlatformTwitch)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHandleDirectoryRegisterAll(t *testing.T) {
	handles := NewMemoryHandleDirectory()
	handles.RegisterAll("user_1", map[domain.PlatformID]string{
		PlatformTwitch:  "streamer_one",
		PlatformYouTube: "UCabc123",
	})

	got, err := handles.Lookup(context.Background(), "user_1", PlatformYouTube)
	require.NoError(t, err)
	assert.Equal(t, "UCabc123", got)
}

func TestTwitchClientLiveStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "streamer_one", r.URL.Query().Get("user_login"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": "broadcast_9", "type": "live"}},
		})
	}))
	defer server.Close()

	handles := NewMemoryHandleDirectory()
	client := NewTwitchClient(config.PlatformConfig{
		Enabled: true,
		APIBase: server.URL,
		Token:   "tok",
	}, handles, zap.NewNop().Sugar())

	status, err := client.GetLiveStatus(context.Background(), "streamer_one")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, domain.LiveStateLive, status.State)
	assert.Equal(t, "broadcast_9", status.ID)
}

func TestTwitchClientOfflineChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer server.Close()

	client := NewTwitchClient(config.PlatformConfig{
		Enabled: true,
		APIBase: server.URL,
		Token:   "tok",
	}, NewMemoryHandleDirectory(), zap.NewNop().Sugar())

	status, err := client.GetLiveStatus(context.Background(), "streamer_one")
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "offline", status.State)
}

func TestKickClientUnknownChannel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewKickClient(config.PlatformConfig{
		Enabled: true,
		APIBase: server.URL,
	}, NewMemoryHandleDirectory(), zap.NewNop().Sugar())

	status, err := client.GetLiveStatus(context.Background(), "ghost_channel")
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestClientConfiguration(t *testing.T) {
	handles := NewMemoryHandleDirectory()
	logger := zap.NewNop().Sugar()

	twitch := NewTwitchClient(config.PlatformConfig{Enabled: true, APIBase: "https://x", Token: "t"}, handles, logger)
	assert.True(t, twitch.IsConfigured())

	noToken := NewTwitchClient(config.PlatformConfig{Enabled: true, APIBase: "https://x"}, handles, logger)
	assert.False(t, noToken.IsConfigured())

	// Kick needs no token
	kick := NewKickClient(config.PlatformConfig{Enabled: true, APIBase: "https://x"}, handles, logger)
	assert.True(t, kick.IsConfigured())
}
