package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store"
	"github.com/aussiebroadwan/usermgmt/pkg/idx"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

// SeedService loads fixture data into an empty directory.
type SeedService struct {
	Store store.Store
}

// IsSeeded reports whether the directory already holds groups or users.
func (s *SeedService) IsSeeded(ctx context.Context) (bool, error) {
	groupsEmpty, err := s.Store.Groups().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	usersEmpty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !groupsEmpty || !usersEmpty, nil
}

// Seed writes fx in a single transaction unless the directory already has
// data. It reports whether anything was written.
func (s *SeedService) Seed(ctx context.Context, fx domain.Fixtures) (bool, error) {
	l := slogx.FromContext(ctx)

	if seeded, err := s.IsSeeded(ctx); err != nil || seeded {
		return false, err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, name := range fx.Groups {
			if err := tx.Groups().CreateGroup(ctx, domain.Group{ID: idx.New().String(), Name: name}); err != nil {
				l.Error("failed to seed group", slog.String("group", name), slog.Any("error", err))
				return err
			}
		}
		for _, u := range fx.Users {
			if err := tx.Users().CreateUser(ctx, u); err != nil {
				l.Error("failed to seed user", slog.String("email", u.Email), slog.Any("error", err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	l.Info("directory seeded", slog.Int("groups", len(fx.Groups)), slog.Int("users", len(fx.Users)))
	return true, nil
}
