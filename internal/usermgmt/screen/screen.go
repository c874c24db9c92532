// Package screen holds the state of one user-management screen and the
// workflows that mutate it. It knows nothing about rendering: the HTML page
// and the JSON API both drive a Screen and read back a Snapshot.
package screen

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/service"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

const msgSelectGroup = "Please select a group first"

// Directory is the group/user data source. *service.DirectoryService
// satisfies it.
type Directory interface {
	ListGroups(ctx context.Context) ([]domain.Group, error)
	ListUsers(ctx context.Context, group string) ([]domain.User, error)
	CreateUser(ctx context.Context, nu domain.NewUser) (domain.User, error)
}

type dialogState struct {
	open  bool
	email string
	roles domain.RoleSet
}

// Screen is the source of truth for one session. All methods are safe for
// concurrent use. The mutex is never held across directory calls, remote
// updates or notifications.
type Screen struct {
	dir      Directory
	updater  service.RoleUpdater
	notifier notify.Notifier

	mu          sync.Mutex
	initialized bool
	groups      []string
	selected    string
	search      string
	users       []domain.User // members of selected, as loaded
	pending     *PendingSet
	dialog      dialogState

	inflight sync.WaitGroup
}

// New builds a screen. A nil notifier discards notifications.
func New(dir Directory, updater service.RoleUpdater, notifier notify.Notifier) *Screen {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Screen{
		dir:      dir,
		updater:  updater,
		notifier: notifier,
		pending:  NewPendingSet(),
	}
}

// Init loads the group list and, when nothing is selected yet, selects the
// first group. Once it has succeeded later calls do nothing; a failed load
// is reported and may be retried.
func (s *Screen) Init(ctx context.Context) error {
	s.mu.Lock()
	done := s.initialized
	s.mu.Unlock()
	if done {
		return nil
	}

	groups, err := s.dir.ListGroups(ctx)
	if err != nil {
		s.notifier.Notify(ctx, notify.Error("Failed to load groups. Please try again."))
		return fmt.Errorf("init screen: %w", err)
	}

	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.initialized = true
	s.groups = domain.GroupNames(groups)
	var load string
	if s.selected == "" && len(s.groups) > 0 {
		s.selected = s.groups[0]
		load = s.selected
	}
	s.mu.Unlock()

	if load == "" {
		return nil
	}
	return s.loadUsers(ctx, load)
}

// loadUsers replaces the working list with the members of group, unless the
// selection moved on while the directory was being read.
func (s *Screen) loadUsers(ctx context.Context, group string) error {
	users, err := s.dir.ListUsers(ctx, group)

	s.mu.Lock()
	if s.selected == group {
		s.users = users
	}
	s.mu.Unlock()

	if err != nil {
		s.notifier.Notify(ctx, notify.Error("Failed to load users for %s. Please try again.", group))
		return err
	}
	return nil
}

// SelectGroup switches the screen to group and loads its members. An empty
// name clears the selection.
func (s *Screen) SelectGroup(ctx context.Context, group string) error {
	group = strings.TrimSpace(group)

	s.mu.Lock()
	if group != "" && !slices.Contains(s.groups, group) {
		s.mu.Unlock()
		return domain.ErrGroupNotFound
	}
	s.selected = group
	s.users = nil
	s.mu.Unlock()

	if group == "" {
		return nil
	}
	return s.loadUsers(ctx, group)
}

func (s *Screen) SetSearchTerm(term string) {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
}

func (s *Screen) SelectedGroup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Screen) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

func (s *Screen) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.groups)
}

// FilteredUsers applies the search term and group to the working list.
func (s *Screen) FilteredUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneUsers(domain.FilterUsers(s.users, s.search, s.selected))
}

// User looks up a member of the selected group by email.
func (s *Screen) User(email string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(email)
	if i < 0 {
		return domain.User{}, false
	}
	return s.users[i].Clone(), true
}

func (s *Screen) IsPending(email string, role domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Has(email, role)
}

func (s *Screen) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Len()
}

// Wait blocks until every toggle started so far has resolved.
func (s *Screen) Wait() {
	s.inflight.Wait()
}

// indexOf must be called with mu held.
func (s *Screen) indexOf(email string) int {
	email = strings.TrimSpace(email)
	return slices.IndexFunc(s.users, func(u domain.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func cloneUsers(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = u.Clone()
	}
	return out
}

func (s *Screen) logger(ctx context.Context) *slog.Logger {
	return slogx.FromContext(ctx)
}
