package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the group/user directory.
// Concrete drivers implement it. Sub-repositories hang off the store (and off
// a Tx) so a transaction can never be started from inside another one.
type Store interface {
	Groups() Groups
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Groups interface {
	// ListGroups returns every group in creation order.
	ListGroups(ctx context.Context) ([]domain.Group, error)

	GetGroupByName(ctx context.Context, name string) (domain.Group, error)

	// CreateGroup inserts a group (id is provided by the caller as a ULID).
	// Duplicate names fail with ErrAlreadyExists.
	CreateGroup(ctx context.Context, g domain.Group) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Users interface {
	// ListUsersByGroup returns the members of the named group in creation
	// order, each with their full role set and group list.
	ListUsersByGroup(ctx context.Context, group string) ([]domain.User, error)

	// GetUserByEmail matches email case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts the user with its roles and group memberships.
	// Fails with ErrAlreadyExists for a known email and ErrNotFound for an
	// unknown group. Run it inside WithTx to keep the inserts atomic.
	CreateUser(ctx context.Context, u domain.User) error

	// AddUserToGroup is a no-op if the user is already a member.
	AddUserToGroup(ctx context.Context, email, group string) error

	// AddRole grants role; granting a held role changes nothing.
	AddRole(ctx context.Context, email string, role domain.Role) error

	// RemoveRole revokes role; revoking a role not held changes nothing.
	RemoveRole(ctx context.Context, email string, role domain.Role) error

	IsEmpty(ctx context.Context) (bool, error)
}
