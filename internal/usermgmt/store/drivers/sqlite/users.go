package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store"
)

type usersRepo struct {
	db dbtx
}

// selectUser aggregates roles and group names per user so a listing is one
// query, whatever the number of users.
const selectUser = `
SELECT
    u.email,
    u.last_active,
    COALESCE((SELECT group_concat(r.role, ' ') FROM user_roles r WHERE r.email = u.email), ''),
    COALESCE((
        SELECT group_concat(g.name, char(9))
        FROM group_members m JOIN directory_groups g ON g.id = m.group_id
        WHERE m.email = u.email
    ), '')
FROM directory_users u
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u          domain.User
		lastActive sql.NullString
		roles      string
		groups     string
	)
	if err := row.Scan(&u.Email, &lastActive, &roles, &groups); err != nil {
		return domain.User{}, err
	}
	u.LastActive = mapNullString(lastActive)
	u.Roles = parseRoles(roles)
	u.Groups = parseGroupNames(groups)
	return u, nil
}

func (r *usersRepo) ListUsersByGroup(ctx context.Context, group string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+`
JOIN group_members gm ON gm.email = u.email
JOIN directory_groups gg ON gg.id = gm.group_id
WHERE gg.name = ?
ORDER BY u.rowid`, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+`WHERE u.email = ?`, email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO directory_users (email, last_active) VALUES (?, ?)`,
		u.Email, mapStringNull(u.LastActive),
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, group := range u.Groups {
		if err := r.AddUserToGroup(ctx, u.Email, group); err != nil {
			return err
		}
	}
	for _, role := range u.Roles.Roles() {
		if err := r.AddRole(ctx, u.Email, role); err != nil {
			return err
		}
	}
	return nil
}

func (r *usersRepo) AddUserToGroup(ctx context.Context, email, group string) error {
	res, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO group_members (email, group_id)
SELECT ?, id FROM directory_groups WHERE name = ?`, email, group)
	if err != nil {
		return mapConstraint(err)
	}

	// Zero rows means either an unknown group or an existing membership
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := (&groupsRepo{db: r.db}).GetGroupByName(ctx, group); err != nil {
			return err
		}
	}
	return nil
}

func (r *usersRepo) AddRole(ctx context.Context, email string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_roles (email, role) VALUES (?, ?)`, email, string(role))
	if err != nil {
		return mapConstraint(err)
	}
	return r.touch(ctx, email)
}

func (r *usersRepo) RemoveRole(ctx context.Context, email string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_roles WHERE email = ? AND role = ?`, email, string(role))
	if err != nil {
		return err
	}
	return r.touch(ctx, email)
}

// touch bumps updated_at and reports ErrNotFound for unknown users.
func (r *usersRepo) touch(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE directory_users SET updated_at = CURRENT_TIMESTAMP WHERE email = ?`, email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM directory_users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
