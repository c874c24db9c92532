package screen

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
)

// OpenAddUserDialog opens the add-user dialog for the selected group.
func (s *Screen) OpenAddUserDialog(ctx context.Context) error {
	s.mu.Lock()
	if s.selected == "" {
		s.mu.Unlock()
		s.notifier.Notify(ctx, notify.Error(msgSelectGroup))
		return domain.ErrNoGroupSelected
	}
	s.dialog.open = true
	s.mu.Unlock()
	return nil
}

// CloseAddUserDialog hides the dialog. What was typed is kept for next time.
func (s *Screen) CloseAddUserDialog() {
	s.mu.Lock()
	s.dialog.open = false
	s.mu.Unlock()
}

func (s *Screen) SetDialogEmail(email string) {
	s.mu.Lock()
	s.dialog.email = email
	s.mu.Unlock()
}

func (s *Screen) SetDialogRole(role domain.Role, on bool) error {
	if !role.Valid() {
		return domain.ErrUnknownRole
	}
	s.mu.Lock()
	s.dialog.roles = s.dialog.roles.With(role, on)
	s.mu.Unlock()
	return nil
}

// AddUser validates the form and creates the user in the selected group. On
// success the user joins the working list, the dialog fields are reset and
// the dialog closes. On failure the entered values stay in the dialog.
func (s *Screen) AddUser(ctx context.Context, email string, roles domain.RoleSet) (domain.NewUser, error) {
	s.mu.Lock()
	group := s.selected
	s.dialog.email = email
	s.dialog.roles = roles
	s.mu.Unlock()

	switch err := domain.ValidateNewUser(email, roles); {
	case errors.Is(err, domain.ErrMissingEmail):
		s.notifier.Notify(ctx, notify.Error("Please enter an email address"))
		return domain.NewUser{}, err
	case errors.Is(err, domain.ErrNoRolesSelected):
		s.notifier.Notify(ctx, notify.Error("Please select at least one role"))
		return domain.NewUser{}, err
	}
	if group == "" {
		s.notifier.Notify(ctx, notify.Error(msgSelectGroup))
		return domain.NewUser{}, domain.ErrNoGroupSelected
	}

	nu := domain.NewUser{Email: strings.TrimSpace(email), Roles: roles, Group: group}
	user, err := s.dir.CreateUser(ctx, nu)
	if err != nil {
		s.logger(ctx).Warn("failed to add user", "email", nu.Email, "group", group, "error", err)
		if errors.Is(err, domain.ErrUserExists) {
			s.notifier.Notify(ctx, notify.Error("User %s already exists", nu.Email))
		} else {
			s.notifier.Notify(ctx, notify.Error("Failed to add user %s. Please try again.", nu.Email))
		}
		return domain.NewUser{}, err
	}

	s.mu.Lock()
	if s.selected == group && s.indexOf(user.Email) < 0 {
		s.users = append(s.users, user)
	}
	s.dialog = dialogState{}
	s.mu.Unlock()

	s.logger(ctx).Info("user added", "email", nu.Email, "group", group, "roles", nu.Roles.String())
	s.notifier.Notify(ctx, notify.Success("User %s added to %s", nu.Email, group))
	return nu, nil
}
