package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/store"
)

// DirectoryService is the group/user data source behind the screen.
type DirectoryService struct {
	Store store.Store
}

// ListGroups returns every group in creation order.
func (s *DirectoryService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups, err := s.Store.Groups().ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ListUsers returns the members of group.
func (s *DirectoryService) ListUsers(ctx context.Context, group string) ([]domain.User, error) {
	users, err := s.Store.Users().ListUsersByGroup(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list users of %q: %w", group, err)
	}
	return users, nil
}

// CreateUser validates nu and stores it as a member of nu.Group. An email
// already in the directory but outside nu.Group joins the group and gains the
// requested roles; one already in nu.Group fails with domain.ErrUserExists.
func (s *DirectoryService) CreateUser(ctx context.Context, nu domain.NewUser) (domain.User, error) {
	nu.Email = strings.TrimSpace(nu.Email)
	if err := domain.ValidateNewUser(nu.Email, nu.Roles); err != nil {
		return domain.User{}, err
	}
	if nu.Group == "" {
		return domain.User{}, domain.ErrNoGroupSelected
	}

	var user domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		users := tx.Users()

		existing, err := users.GetUserByEmail(ctx, nu.Email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			user = domain.User{
				Email:  nu.Email,
				Roles:  nu.Roles,
				Groups: []string{nu.Group},
			}
			return users.CreateUser(ctx, user)
		case err != nil:
			return err
		case existing.InGroup(nu.Group):
			return store.ErrAlreadyExists
		}

		if err := users.AddUserToGroup(ctx, existing.Email, nu.Group); err != nil {
			return err
		}
		for _, role := range nu.Roles.Roles() {
			if err := users.AddRole(ctx, existing.Email, role); err != nil {
				return err
			}
		}

		user, err = users.GetUserByEmail(ctx, existing.Email)
		return err
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, domain.ErrUserExists
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, domain.ErrGroupNotFound
	case err != nil:
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
