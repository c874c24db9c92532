package sqlite_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store/drivers/sqlite"
	"github.com/aussiebroadwan/usermgmt/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedGroups(t *testing.T, st store.Store, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, st.Groups().CreateGroup(context.Background(), domain.Group{
			ID:   idx.New().String(),
			Name: name,
		}))
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestGroups(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	empty, err := st.Groups().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	seedGroups(t, st, "Engineering", "Product", "Design")

	groups, err := st.Groups().ListGroups(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Engineering", "Product", "Design"}, domain.GroupNames(groups))

	g, err := st.Groups().GetGroupByName(ctx, "Product")
	require.NoError(t, err)
	require.Equal(t, groups[1], g)

	_, err = st.Groups().GetGroupByName(ctx, "Sales")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Groups().CreateGroup(ctx, domain.Group{ID: idx.New().String(), Name: "Design"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateAndListUsers(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedGroups(t, st, "Engineering", "Product", "Design")

	for _, u := range domain.DefaultFixtures().Users {
		require.NoError(t, st.Users().CreateUser(ctx, u))
	}

	users, err := st.Users().ListUsersByGroup(ctx, "Engineering")
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "aaron.smith@example.com", users[0].Email)
	require.Equal(t, "2022-06-30", users[0].LastActive)
	require.Equal(t, domain.NewRoleSet(domain.RoleActive), users[0].Roles)
	require.ElementsMatch(t, []string{"Engineering", "Product"}, users[0].Groups)

	require.Equal(t, "sarah.j@example.com", users[1].Email)
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager), users[1].Roles)
	require.Equal(t, []string{"Engineering"}, users[1].Groups)

	users, err = st.Users().ListUsersByGroup(ctx, "Design")
	require.NoError(t, err)
	require.Empty(t, users)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, domain.User{Email: "SARAH.J@example.com"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup ignores case", func(t *testing.T) {
		u, err := st.Users().GetUserByEmail(ctx, "Sarah.J@Example.com")
		require.NoError(t, err)
		require.Equal(t, "sarah.j@example.com", u.Email)

		_, err = st.Users().GetUserByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestCreateUserUnknownGroupRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedGroups(t, st, "Engineering")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{
			Email:  "new@example.com",
			Roles:  domain.NewRoleSet(domain.RoleWrite),
			Groups: []string{"Engineering", "Sales"},
		})
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByEmail(ctx, "new@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoleSetSemantics(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedGroups(t, st, "Engineering")

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{
		Email:  "sarah.j@example.com",
		Roles:  domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager),
		Groups: []string{"Engineering"},
	}))

	// Granting twice never produces a duplicate
	require.NoError(t, st.Users().AddRole(ctx, "sarah.j@example.com", domain.RoleWrite))
	require.NoError(t, st.Users().AddRole(ctx, "SARAH.J@example.com", domain.RoleWrite))

	u, err := st.Users().GetUserByEmail(ctx, "sarah.j@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager, domain.RoleWrite), u.Roles)

	require.NoError(t, st.Users().RemoveRole(ctx, "sarah.j@example.com", domain.RoleWrite))
	require.NoError(t, st.Users().RemoveRole(ctx, "sarah.j@example.com", domain.RoleWrite))

	u, err = st.Users().GetUserByEmail(ctx, "sarah.j@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.NewRoleSet(domain.RoleAdmin, domain.RoleUsersManager), u.Roles)

	require.ErrorIs(t, st.Users().AddRole(ctx, "ghost@example.com", domain.RoleWrite), store.ErrNotFound)
	require.ErrorIs(t, st.Users().RemoveRole(ctx, "ghost@example.com", domain.RoleWrite), store.ErrNotFound)
	require.ErrorIs(t, st.Users().AddRole(ctx, "sarah.j@example.com", domain.Role("Owner")), domain.ErrUnknownRole)
}

func TestAddUserToGroup(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedGroups(t, st, "Engineering", "Design")

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{Email: "a@example.com", Groups: []string{"Engineering"}}))

	require.NoError(t, st.Users().AddUserToGroup(ctx, "a@example.com", "Design"))
	require.NoError(t, st.Users().AddUserToGroup(ctx, "a@example.com", "Design"))
	require.ErrorIs(t, st.Users().AddUserToGroup(ctx, "a@example.com", "Sales"), store.ErrNotFound)

	users, err := st.Users().ListUsersByGroup(ctx, "Design")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.ElementsMatch(t, []string{"Engineering", "Design"}, users[0].Groups)
}

func TestNestedTxNotSupported(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		require.Error(t, err)
		return nil
	})
	require.NoError(t, err)
}
