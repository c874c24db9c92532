package screen

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
)

// StartToggle begins setting role on the user with the given email to
// granted. It checks the request and marks the pair pending before
// returning; the remote update then runs on its own goroutine and its result
// is delivered on the returned channel, after the pair has been cleared from
// the pending set.
//
// A toggle for a pair that is already pending is rejected with
// domain.ErrToggleInFlight; nothing is queued.
func (s *Screen) StartToggle(ctx context.Context, email string, role domain.Role, granted bool) (<-chan error, error) {
	if !role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	s.mu.Lock()
	group := s.selected
	if group == "" {
		s.mu.Unlock()
		s.notifier.Notify(ctx, notify.Error(msgSelectGroup))
		return nil, domain.ErrNoGroupSelected
	}
	i := s.indexOf(email)
	if i < 0 {
		s.mu.Unlock()
		s.notifier.Notify(ctx, notify.Error("User %s is not in %s", email, group))
		return nil, domain.ErrUserNotFound
	}
	email = s.users[i].Email
	if !s.pending.Add(email, role) {
		s.mu.Unlock()
		s.notifier.Notify(ctx, notify.Error("An update for %s on %s is already in progress", role, email))
		return nil, domain.ErrToggleInFlight
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	change := domain.RoleChange{Email: email, Role: role, Group: group, Granted: granted}
	done := make(chan error, 1)
	go func() {
		defer s.inflight.Done()
		done <- s.resolveToggle(ctx, change)
		close(done)
	}()
	return done, nil
}

// ToggleRole is StartToggle followed by waiting for the outcome.
func (s *Screen) ToggleRole(ctx context.Context, email string, role domain.Role, granted bool) error {
	done, err := s.StartToggle(ctx, email, role, granted)
	if err != nil {
		return err
	}
	return <-done
}

// resolveToggle performs the remote update and applies it locally on
// success. The pending mark is cleared on every path out, panics included.
func (s *Screen) resolveToggle(ctx context.Context, change domain.RoleChange) (err error) {
	log := s.logger(ctx).With("email", change.Email, "role", change.Role, "group", change.Group, "granted", change.Granted)

	defer func() {
		if r := recover(); r != nil {
			log.Error("role updater panicked", "panic", r)
			err = fmt.Errorf("%w: panic: %v", domain.ErrRemoteUpdateFailed, r)
			s.notifier.Notify(ctx, failureNotification(change))
		}

		s.mu.Lock()
		s.pending.Remove(change.Email, change.Role)
		s.mu.Unlock()
	}()

	if err := s.updater.UpdateRole(ctx, change); err != nil {
		log.Warn("role update failed", "error", err)
		s.notifier.Notify(ctx, failureNotification(change))
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(change.Email); i >= 0 {
		s.users[i].Roles = s.users[i].Roles.With(change.Role, change.Granted)
	}
	s.mu.Unlock()

	log.Info("role updated")
	verb := "Removed"
	if change.Granted {
		verb = "Added"
	}
	s.notifier.Notify(ctx, notify.Success("%s %s role for %s in %s", verb, change.Role, change.Email, change.Group))
	return nil
}

func failureNotification(change domain.RoleChange) notify.Notification {
	verb := "remove"
	if change.Granted {
		verb = "add"
	}
	return notify.Error("Failed to %s %s role. Please try again.", verb, change.Role)
}
