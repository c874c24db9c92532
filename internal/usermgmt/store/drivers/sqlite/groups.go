package sqlite

import (
	"context"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM directory_groups ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupsRepo) GetGroupByName(ctx context.Context, name string) (domain.Group, error) {
	var g domain.Group
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM directory_groups WHERE name = ?`, name,
	).Scan(&g.ID, &g.Name)
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	return g, nil
}

func (r *groupsRepo) CreateGroup(ctx context.Context, g domain.Group) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO directory_groups (id, name) VALUES (?, ?)`, g.ID, g.Name)
	return mapConstraint(err)
}

func (r *groupsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM directory_groups`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
