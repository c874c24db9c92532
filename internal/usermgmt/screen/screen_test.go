package screen_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/service"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// memDirectory serves the default fixtures from memory.
type memDirectory struct {
	mu        sync.Mutex
	fx        domain.Fixtures
	groupsErr error
	createErr error
}

func newMemDirectory() *memDirectory {
	return &memDirectory{fx: domain.DefaultFixtures()}
}

func (d *memDirectory) ListGroups(context.Context) ([]domain.Group, error) {
	if d.groupsErr != nil {
		return nil, d.groupsErr
	}
	out := make([]domain.Group, 0, len(d.fx.Groups))
	for _, g := range d.fx.Groups {
		out = append(out, domain.Group{Name: g})
	}
	return out, nil
}

func (d *memDirectory) ListUsers(_ context.Context, group string) ([]domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []domain.User
	for _, u := range d.fx.Users {
		if u.InGroup(group) {
			out = append(out, u.Clone())
		}
	}
	return out, nil
}

func (d *memDirectory) CreateUser(_ context.Context, nu domain.NewUser) (domain.User, error) {
	if d.createErr != nil {
		return domain.User{}, d.createErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, u := range d.fx.Users {
		if !strings.EqualFold(u.Email, nu.Email) {
			continue
		}
		if u.InGroup(nu.Group) {
			return domain.User{}, domain.ErrUserExists
		}
		u = u.Clone()
		u.Groups = append(u.Groups, nu.Group)
		u.Roles |= nu.Roles
		d.fx.Users[i] = u
		return u.Clone(), nil
	}
	u := domain.User{Email: nu.Email, Roles: nu.Roles, LastActive: "Never", Groups: []string{nu.Group}}
	d.fx.Users = append(d.fx.Users, u)
	return u, nil
}

// outcome is a RoleUpdater that answers immediately.
func outcome(err error) service.RoleUpdater {
	return service.RoleUpdaterFunc(func(context.Context, domain.RoleChange) error { return err })
}

// gate blocks every update until release is closed.
type gate struct {
	started chan domain.RoleChange
	release chan struct{}
	err     error
}

func newGate() *gate {
	return &gate{started: make(chan domain.RoleChange, 8), release: make(chan struct{})}
}

func (g *gate) UpdateRole(ctx context.Context, change domain.RoleChange) error {
	g.started <- change
	select {
	case <-g.release:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newScreen(t *testing.T, updater service.RoleUpdater) (*screen.Screen, *notify.Feed) {
	t.Helper()
	feed := notify.NewFeed(0)
	s := screen.New(newMemDirectory(), updater, feed)
	require.NoError(t, s.Init(context.Background()))
	return s, feed
}

func lastNotification(t *testing.T, feed *notify.Feed) notify.Notification {
	t.Helper()
	ns := feed.Drain()
	require.NotEmpty(t, ns)
	return ns[len(ns)-1]
}

func TestInitSelectsFirstGroup(t *testing.T) {
	s, feed := newScreen(t, outcome(nil))

	require.Equal(t, "Engineering", s.SelectedGroup())
	require.Equal(t, []string{"Engineering", "Product", "Design"}, s.Groups())
	require.Len(t, s.FilteredUsers(), 2)
	require.Zero(t, feed.Len())

	// a second Init keeps the current selection
	require.NoError(t, s.SelectGroup(context.Background(), "Design"))
	require.NoError(t, s.Init(context.Background()))
	require.Equal(t, "Design", s.SelectedGroup())
	require.Empty(t, s.FilteredUsers())
}

func TestInitFailureIsRetried(t *testing.T) {
	dir := newMemDirectory()
	dir.groupsErr = errors.New("boom")
	feed := notify.NewFeed(0)
	s := screen.New(dir, outcome(nil), feed)

	require.Error(t, s.Init(context.Background()))
	require.Equal(t, "", s.SelectedGroup())
	n := lastNotification(t, feed)
	require.Equal(t, notify.SeverityError, n.Severity)
	require.Equal(t, "Failed to load groups. Please try again.", n.Message)

	dir.groupsErr = nil
	require.NoError(t, s.Init(context.Background()))
	require.Equal(t, "Engineering", s.SelectedGroup())
}

func TestSelectGroupAndSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := newScreen(t, outcome(nil))

	s.SetSearchTerm("SARAH")
	users := s.FilteredUsers()
	require.Len(t, users, 1)
	require.Equal(t, "sarah.j@example.com", users[0].Email)

	require.NoError(t, s.SelectGroup(ctx, "Product"))
	require.Empty(t, s.FilteredUsers())
	s.SetSearchTerm("")
	require.Len(t, s.FilteredUsers(), 1)

	require.ErrorIs(t, s.SelectGroup(ctx, "Marketing"), domain.ErrGroupNotFound)
	require.Equal(t, "Product", s.SelectedGroup())

	require.NoError(t, s.SelectGroup(ctx, ""))
	require.Empty(t, s.FilteredUsers())
	require.Empty(t, s.Snapshot().Users)
}

func TestToggleGrantSucceeds(t *testing.T) {
	s, feed := newScreen(t, outcome(nil))

	require.NoError(t, s.ToggleRole(context.Background(), "sarah.j@example.com", domain.RoleWrite, true))

	u, ok := s.User("sarah.j@example.com")
	require.True(t, ok)
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager, domain.RoleWrite), u.Roles)
	require.Zero(t, s.PendingCount())

	n := lastNotification(t, feed)
	require.Equal(t, notify.SeveritySuccess, n.Severity)
	require.Equal(t, "Added Write role for sarah.j@example.com in Engineering", n.Message)
}

func TestToggleRevokeFailureLeavesRoles(t *testing.T) {
	s, feed := newScreen(t, outcome(domain.ErrRemoteUpdateFailed))

	err := s.ToggleRole(context.Background(), "sarah.j@example.com", domain.RoleAdmin, false)
	require.ErrorIs(t, err, domain.ErrRemoteUpdateFailed)

	u, _ := s.User("sarah.j@example.com")
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager), u.Roles)
	require.Zero(t, s.PendingCount())

	n := lastNotification(t, feed)
	require.Equal(t, notify.SeverityError, n.Severity)
	require.Equal(t, "Failed to remove Admin role. Please try again.", n.Message)
}

func TestToggleIsPendingWhileInFlight(t *testing.T) {
	g := newGate()
	s, _ := newScreen(t, g)

	done, err := s.StartToggle(context.Background(), "aaron.smith@example.com", domain.RolePopulate, true)
	require.NoError(t, err)
	<-g.started

	require.True(t, s.IsPending("Aaron.Smith@example.com", domain.RolePopulate))
	require.False(t, s.IsPending("aaron.smith@example.com", domain.RoleWrite))
	require.Equal(t, 1, s.PendingCount())

	snap := s.Snapshot()
	require.Equal(t, 1, snap.Pending)
	for _, row := range snap.Users {
		for _, tg := range row.Toggles {
			want := row.Email == "aaron.smith@example.com" && tg.Role == domain.RolePopulate
			require.Equal(t, want, tg.Loading, "%s %s", row.Email, tg.Role)
		}
	}

	// another role on the same user is independent
	other, err := s.StartToggle(context.Background(), "aaron.smith@example.com", domain.RoleWrite, true)
	require.NoError(t, err)
	<-g.started
	require.Equal(t, 2, s.PendingCount())

	close(g.release)
	require.NoError(t, <-done)
	require.NoError(t, <-other)
	s.Wait()

	require.Zero(t, s.PendingCount())
	u, _ := s.User("aaron.smith@example.com")
	require.Equal(t, domain.NewRoleSet(domain.RoleActive, domain.RolePopulate, domain.RoleWrite), u.Roles)
}

func TestToggleSameKeyRejected(t *testing.T) {
	g := newGate()
	s, feed := newScreen(t, g)
	ctx := context.Background()

	done, err := s.StartToggle(ctx, "sarah.j@example.com", domain.RoleWrite, true)
	require.NoError(t, err)
	<-g.started

	_, err = s.StartToggle(ctx, "sarah.j@example.com", domain.RoleWrite, false)
	require.ErrorIs(t, err, domain.ErrToggleInFlight)
	n := lastNotification(t, feed)
	require.Equal(t, notify.SeverityError, n.Severity)

	close(g.release)
	require.NoError(t, <-done)
	require.Zero(t, s.PendingCount())
}

func TestToggleRequiresGroupAndUser(t *testing.T) {
	ctx := context.Background()
	s, feed := newScreen(t, outcome(nil))

	require.ErrorIs(t, s.ToggleRole(ctx, "sarah.j@example.com", "Owner", true), domain.ErrUnknownRole)
	require.ErrorIs(t, s.ToggleRole(ctx, "nobody@example.com", domain.RoleWrite, true), domain.ErrUserNotFound)

	require.NoError(t, s.SelectGroup(ctx, ""))
	feed.Drain()
	require.ErrorIs(t, s.ToggleRole(ctx, "sarah.j@example.com", domain.RoleWrite, true), domain.ErrNoGroupSelected)
	require.Equal(t, "Please select a group first", lastNotification(t, feed).Message)
	require.Zero(t, s.PendingCount())
}

func TestToggleIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newScreen(t, outcome(nil))

	require.NoError(t, s.ToggleRole(ctx, "sarah.j@example.com", domain.RoleAdmin, true))
	u, _ := s.User("sarah.j@example.com")
	require.Equal(t, 2, u.Roles.Len())

	require.NoError(t, s.ToggleRole(ctx, "aaron.smith@example.com", domain.RoleWrite, false))
	u, _ = s.User("aaron.smith@example.com")
	require.Equal(t, domain.NewRoleSet(domain.RoleActive), u.Roles)
}

func TestToggleGrantThenRevokeRestoresRoles(t *testing.T) {
	ctx := context.Background()
	s, _ := newScreen(t, outcome(nil))

	require.NoError(t, s.ToggleRole(ctx, "sarah.j@example.com", domain.RoleWrite, true))
	u, _ := s.User("sarah.j@example.com")
	require.Equal(t, 3, u.Roles.Len())

	require.NoError(t, s.ToggleRole(ctx, "sarah.j@example.com", domain.RoleWrite, false))
	u, _ = s.User("sarah.j@example.com")
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager), u.Roles)
	require.Equal(t, 2, u.Roles.Len())
	require.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleUsersManager}, u.Roles.Roles())
	require.Zero(t, s.PendingCount())
}

func TestToggleRecoversFromPanic(t *testing.T) {
	s, feed := newScreen(t, service.RoleUpdaterFunc(func(context.Context, domain.RoleChange) error {
		panic("remote exploded")
	}))

	err := s.ToggleRole(context.Background(), "sarah.j@example.com", domain.RoleWrite, true)
	require.ErrorIs(t, err, domain.ErrRemoteUpdateFailed)
	require.Zero(t, s.PendingCount())
	require.Equal(t, "Failed to add Write role. Please try again.", lastNotification(t, feed).Message)
}

func TestToggleWithSimulatedUpdater(t *testing.T) {
	u := service.NewSimulatedUpdater(nil)
	u.Latency = 10 * time.Millisecond
	u.Rand = func() float64 { return 0.95 }
	s, _ := newScreen(t, u)

	err := s.ToggleRole(context.Background(), "sarah.j@example.com", domain.RoleWrite, true)
	require.ErrorIs(t, err, domain.ErrRemoteUpdateFailed)
	require.Zero(t, s.PendingCount())
}

func TestAddUserDialog(t *testing.T) {
	ctx := context.Background()
	s, feed := newScreen(t, outcome(nil))

	require.NoError(t, s.OpenAddUserDialog(ctx))
	require.True(t, s.Snapshot().Dialog.Open)
	require.Equal(t, "Engineering", s.Snapshot().Dialog.Group)

	_, err := s.AddUser(ctx, "   ", domain.NewRoleSet(domain.RoleAdmin))
	require.ErrorIs(t, err, domain.ErrMissingEmail)
	require.Equal(t, "Please enter an email address", lastNotification(t, feed).Message)

	_, err = s.AddUser(ctx, "a@b.com", 0)
	require.ErrorIs(t, err, domain.ErrNoRolesSelected)
	require.Equal(t, "Please select at least one role", lastNotification(t, feed).Message)
	snap := s.Snapshot()
	require.True(t, snap.Dialog.Open)
	require.Equal(t, "a@b.com", snap.Dialog.Email)

	nu, err := s.AddUser(ctx, " a@b.com ", domain.NewRoleSet(domain.RoleAdmin, domain.RoleWrite))
	require.NoError(t, err)
	require.Equal(t, domain.NewUser{
		Email: "a@b.com",
		Roles: domain.NewRoleSet(domain.RoleAdmin, domain.RoleWrite),
		Group: "Engineering",
	}, nu)
	require.Equal(t, "User a@b.com added to Engineering", lastNotification(t, feed).Message)

	snap = s.Snapshot()
	require.False(t, snap.Dialog.Open)
	require.Empty(t, snap.Dialog.Email)
	require.True(t, snap.Dialog.Roles.IsEmpty())
	require.Len(t, snap.Users, 3)
	require.Equal(t, "a@b.com", snap.Users[2].Email)

	_, err = s.AddUser(ctx, "A@B.com", domain.NewRoleSet(domain.RoleActive))
	require.ErrorIs(t, err, domain.ErrUserExists)
	require.Equal(t, "User A@B.com already exists", lastNotification(t, feed).Message)
	require.Len(t, s.FilteredUsers(), 3)
}

func TestDialogFields(t *testing.T) {
	ctx := context.Background()
	s, feed := newScreen(t, outcome(nil))

	s.SetDialogEmail("x@y.z")
	require.NoError(t, s.SetDialogRole(domain.RoleAdmin, true))
	require.NoError(t, s.SetDialogRole(domain.RoleWrite, true))
	require.NoError(t, s.SetDialogRole(domain.RoleWrite, false))
	require.ErrorIs(t, s.SetDialogRole("Owner", true), domain.ErrUnknownRole)

	d := s.Snapshot().Dialog
	require.Equal(t, "x@y.z", d.Email)
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin), d.Roles)

	s.CloseAddUserDialog()
	require.False(t, s.Snapshot().Dialog.Open)

	require.NoError(t, s.SelectGroup(ctx, ""))
	require.ErrorIs(t, s.OpenAddUserDialog(ctx), domain.ErrNoGroupSelected)
	require.Equal(t, "Please select a group first", lastNotification(t, feed).Message)
	require.False(t, s.Snapshot().Dialog.Open)
}

func TestAddUserDirectoryFailure(t *testing.T) {
	dir := newMemDirectory()
	dir.createErr = errors.New("disk full")
	feed := notify.NewFeed(0)
	s := screen.New(dir, outcome(nil), feed)
	require.NoError(t, s.Init(context.Background()))

	_, err := s.AddUser(context.Background(), "new@example.com", domain.NewRoleSet(domain.RoleActive))
	require.Error(t, err)
	require.Equal(t, "Failed to add user new@example.com. Please try again.", lastNotification(t, feed).Message)
	require.Len(t, s.FilteredUsers(), 2)
}

func TestScreenOverSQLiteDirectory(t *testing.T) {
	ctx := context.Background()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	_, err = (&service.SeedService{Store: st}).Seed(ctx, domain.DefaultFixtures())
	require.NoError(t, err)

	s := screen.New(&service.DirectoryService{Store: st}, &service.StoreUpdater{Store: st}, nil)
	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.ToggleRole(ctx, "sarah.j@example.com", domain.RoleWrite, true))

	fresh := screen.New(&service.DirectoryService{Store: st}, outcome(nil), nil)
	require.NoError(t, fresh.Init(ctx))
	u, ok := fresh.User("sarah.j@example.com")
	require.True(t, ok)
	require.True(t, u.Roles.Has(domain.RoleWrite))
}

func TestAddExistingUserToAnotherGroup(t *testing.T) {
	ctx := context.Background()
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	_, err = (&service.SeedService{Store: st}).Seed(ctx, domain.DefaultFixtures())
	require.NoError(t, err)

	feed := notify.NewFeed(0)
	s := screen.New(&service.DirectoryService{Store: st}, outcome(nil), feed)
	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.SelectGroup(ctx, "Design"))
	require.Empty(t, s.FilteredUsers())

	_, err = s.AddUser(ctx, "aaron.smith@example.com", domain.NewRoleSet(domain.RoleWrite))
	require.NoError(t, err)
	require.Equal(t, "User aaron.smith@example.com added to Design", lastNotification(t, feed).Message)

	users := s.FilteredUsers()
	require.Len(t, users, 1)
	require.Equal(t, "aaron.smith@example.com", users[0].Email)
	require.Equal(t, domain.NewRoleSet(domain.RoleActive, domain.RoleWrite), users[0].Roles)

	_, err = s.AddUser(ctx, "aaron.smith@example.com", domain.NewRoleSet(domain.RoleAdmin))
	require.ErrorIs(t, err, domain.ErrUserExists)
	require.Equal(t, "User aaron.smith@example.com already exists", lastNotification(t, feed).Message)
	require.Len(t, s.FilteredUsers(), 1)

	require.NoError(t, s.SelectGroup(ctx, "Product"))
	users = s.FilteredUsers()
	require.Len(t, users, 1)
	require.True(t, users[0].Roles.Has(domain.RoleWrite))
}
