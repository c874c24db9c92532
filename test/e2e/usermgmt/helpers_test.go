package usermgmt_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/app"
	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for user-management end-to-end tests. The whole application
 * (config, migrations, fixtures, simulated role service, router) runs
 * in-process behind an httptest server.
 */

const (
	sarah = "sarah.j@example.com"
	aaron = "aaron.smith@example.com"
)

// testConfig is the production config with an in-memory database and a fast,
// always-successful role service.
func testConfig() app.Config {
	cfg := app.LoadConfig()
	cfg.DatabaseFile = ":memory:"
	cfg.SeedFixtures = true
	cfg.RemoteLatency = 20 * time.Millisecond
	cfg.RemoteSuccessRate = 1
	cfg.RemotePersist = true
	cfg.Env = "test"
	cfg.LogLevel = "error"
	cfg.ShutdownGracePeriod = 5 * time.Second
	return cfg
}

// setupService starts the application and returns its base URL.
func setupService(t *testing.T, cfg app.Config) string {
	t.Helper()

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, application.Shutdown())
	})

	return srv.URL
}

// withRateLimit swaps the moderate limit for the duration of the test. It
// must be called before setupService.
func withRateLimit(t *testing.T, cfg httpx.RateLimitConfig) {
	t.Helper()
	prev := httpx.ModerateLimit
	httpx.ModerateLimit = cfg
	t.Cleanup(func() { httpx.ModerateLimit = prev })
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *adminsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// findUser returns the row for email, failing the test when it is not shown.
func findUser(t *testing.T, scr *adminsdk.ScreenResponse, email string) adminsdk.UserRow {
	t.Helper()
	for _, u := range scr.Users {
		if u.Email == email {
			return u
		}
	}
	t.Fatalf("user %s not on screen", email)
	return adminsdk.UserRow{}
}

// drainMessages returns the messages of the session's queued notifications.
func drainMessages(t *testing.T, client *adminsdk.Client) []string {
	t.Helper()
	notes, err := client.DrainNotifications(t.Context())
	require.NoError(t, err)
	msgs := make([]string, len(notes.Notifications))
	for i, n := range notes.Notifications {
		msgs[i] = n.Message
	}
	return msgs
}
