package usermgmt_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints checks both probes on a freshly started service.
func TestHealthEndpoints(t *testing.T) {
	client := adminsdk.NewClient(setupService(t, testConfig()))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.Equal(t, "ok", health.Checks.Database)
}

// TestBootstrapSelectsFirstGroup verifies a new session lands on the first
// seeded group with its members.
func TestBootstrapSelectsFirstGroup(t *testing.T) {
	client := adminsdk.NewClient(setupService(t, testConfig()))

	scr, err := client.GetScreen(t.Context())
	require.NoError(t, err)
	require.Equal(t, "Engineering", scr.SelectedGroup)

	u := findUser(t, scr, sarah)
	require.Equal(t, []string{"Admin", "UsersManager"}, u.Roles)
	require.Equal(t, "2023-12-15", u.LastActive)
	require.Len(t, u.Toggles, 6)
}

// TestToggleLifecycle follows one toggle from pending to applied, through the
// simulated role service and into the database.
func TestToggleLifecycle(t *testing.T) {
	cfg := testConfig()
	cfg.RemoteLatency = 200 * time.Millisecond
	baseURL := setupService(t, cfg)
	client := adminsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.GetScreen(ctx)
	require.NoError(t, err)

	res, err := client.ToggleRole(ctx, adminsdk.ToggleRequest{Email: sarah, Role: "Write", Checked: true})
	require.NoError(t, err)
	require.Equal(t, adminsdk.ToggleStatusPending, res.Status)

	// loading while the remote call runs
	scr, err := client.GetScreen(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, scr.Pending)
	for _, tg := range findUser(t, scr, sarah).Toggles {
		require.Equal(t, tg.Role == "Write", tg.Loading, tg.Role)
	}

	// a second toggle of the same pair is refused
	_, err = client.ToggleRole(ctx, adminsdk.ToggleRequest{Email: sarah, Role: "Write", Checked: false})
	require.True(t, adminsdk.IsCode(err, adminsdk.ErrorCodeToggleInFlight))

	require.Eventually(t, func() bool {
		scr, err := client.GetScreen(ctx)
		return err == nil && scr.Pending == 0
	}, 5*time.Second, 20*time.Millisecond)

	scr, err = client.GetScreen(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Write", "Admin", "UsersManager"}, findUser(t, scr, sarah).Roles)
	require.Contains(t, drainMessages(t, client), "Added Write role for sarah.j@example.com in Engineering")

	// persisted: a new session reads it back from the database
	fresh, err := adminsdk.NewClient(baseURL).GetScreen(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Write", "Admin", "UsersManager"}, findUser(t, fresh, sarah).Roles)
}

// TestToggleRemoteFailure uses a role service that always fails.
func TestToggleRemoteFailure(t *testing.T) {
	cfg := testConfig()
	cfg.RemoteSuccessRate = 0
	client := adminsdk.NewClient(setupService(t, cfg))
	ctx := t.Context()

	_, err := client.ToggleRole(ctx, adminsdk.ToggleRequest{Email: sarah, Role: "Admin", Checked: false, Wait: true})
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	scr, err := client.GetScreen(ctx)
	require.NoError(t, err)
	require.Zero(t, scr.Pending)
	require.Equal(t, []string{"Admin", "UsersManager"}, findUser(t, scr, sarah).Roles)
	require.Equal(t, []string{"Failed to remove Admin role. Please try again."}, drainMessages(t, client))
}

// TestAddUserAcrossSessions adds a user in one session and sees it in another.
func TestAddUserAcrossSessions(t *testing.T) {
	baseURL := setupService(t, testConfig())
	admin := adminsdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := admin.SelectGroup(ctx, "Design")
	require.NoError(t, err)
	_, err = admin.OpenDialog(ctx)
	require.NoError(t, err)

	created, err := admin.CreateUser(ctx, adminsdk.CreateUserRequest{Email: "dana@example.com", Roles: []string{"Populate"}})
	require.NoError(t, err)
	require.Equal(t, "Design", created.Group)
	require.Equal(t, []string{"User dana@example.com added to Design"}, drainMessages(t, admin))

	other := adminsdk.NewClient(baseURL)
	scr, err := other.SelectGroup(ctx, "Design")
	require.NoError(t, err)
	u := findUser(t, scr, "dana@example.com")
	require.Equal(t, []string{"Populate"}, u.Roles)
}

// TestSessionResumeByHeader resumes a session from its id alone.
func TestSessionResumeByHeader(t *testing.T) {
	baseURL := setupService(t, testConfig())
	ctx := t.Context()

	first := adminsdk.NewClient(baseURL)
	_, err := first.SetSearch(ctx, "aaron")
	require.NoError(t, err)

	resumed := adminsdk.NewClient(baseURL)
	resumed.SetSessionID(first.SessionID())
	scr, err := resumed.GetScreen(ctx)
	require.NoError(t, err)
	require.Equal(t, first.SessionID(), scr.SessionID)
	require.Equal(t, "aaron", scr.SearchTerm)
	require.Len(t, scr.Users, 1)
	require.Equal(t, aaron, scr.Users[0].Email)
}

// TestRateLimitToggles verifies mutating routes are rate limited per client.
func TestRateLimitToggles(t *testing.T) {
	withRateLimit(t, httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2})
	client := adminsdk.NewClient(setupService(t, testConfig()))
	ctx := t.Context()

	var lastErr error
	for range 3 {
		_, lastErr = client.SelectGroup(ctx, "Product")
	}
	var apiErr *adminsdk.APIError
	require.ErrorAs(t, lastErr, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, adminsdk.ErrorCodeRateLimited, apiErr.Code)

	// reads use the lenient limit
	_, err := client.GetScreen(ctx)
	require.NoError(t, err)
}
