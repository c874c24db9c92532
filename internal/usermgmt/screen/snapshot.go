package screen

import (
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
)

// RoleToggle is one checkbox in a user row.
type RoleToggle struct {
	Role    domain.Role `json:"role"`
	Checked bool        `json:"checked"`
	Loading bool        `json:"loading"`
}

// UserRow is a filtered user as the screen presents it.
type UserRow struct {
	Email      string         `json:"email"`
	Roles      domain.RoleSet `json:"roles"`
	LastActive string         `json:"lastActive"`
	Toggles    []RoleToggle   `json:"toggles"`
}

type DialogSnapshot struct {
	Open  bool           `json:"open"`
	Group string         `json:"group"`
	Email string         `json:"email"`
	Roles domain.RoleSet `json:"roles"`
}

// Snapshot is a consistent copy of everything a renderer needs.
type Snapshot struct {
	Groups        []string       `json:"groups"`
	SelectedGroup string         `json:"selectedGroup"`
	SearchTerm    string         `json:"searchTerm"`
	Users         []UserRow      `json:"users"`
	Pending       int            `json:"pending"`
	Dialog        DialogSnapshot `json:"dialog"`
}

// Snapshot captures the screen under a single lock. Users is empty, not nil,
// when no group is selected.
func (s *Screen) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := domain.FilterUsers(s.users, s.search, s.selected)
	rows := make([]UserRow, 0, len(filtered))
	for _, u := range filtered {
		busy := s.pending.Roles(u.Email)
		toggles := make([]RoleToggle, 0, len(domain.AllRoles()))
		for _, r := range domain.AllRoles() {
			toggles = append(toggles, RoleToggle{Role: r, Checked: u.Roles.Has(r), Loading: busy.Has(r)})
		}
		rows = append(rows, UserRow{
			Email:      u.Email,
			Roles:      u.Roles,
			LastActive: u.LastActive,
			Toggles:    toggles,
		})
	}

	groups := make([]string, len(s.groups))
	copy(groups, s.groups)

	return Snapshot{
		Groups:        groups,
		SelectedGroup: s.selected,
		SearchTerm:    s.search,
		Users:         rows,
		Pending:       s.pending.Len(),
		Dialog: DialogSnapshot{
			Open:  s.dialog.open,
			Group: s.selected,
			Email: s.dialog.email,
			Roles: s.dialog.roles,
		},
	}
}
