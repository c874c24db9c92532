package domain

import (
	"encoding/json"
	"strings"
)

// Role is a capability tag attached to a user.
type Role string

const (
	RoleActive            Role = "Active"
	RolePopulate          Role = "Populate"
	RoleWrite             Role = "Write"
	RoleAdmin             Role = "Admin"
	RoleResolutionManager Role = "ResolutionManager"
	RoleUsersManager      Role = "UsersManager"
)

var allRoles = [...]Role{
	RoleActive,
	RolePopulate,
	RoleWrite,
	RoleAdmin,
	RoleResolutionManager,
	RoleUsersManager,
}

// AllRoles returns every role in display order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles[:])
	return out
}

// ParseRole matches s against the known roles, ignoring case.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range allRoles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.bit() != 0 }

func (r Role) bit() RoleSet {
	for i, known := range allRoles {
		if known == r {
			return 1 << i
		}
	}
	return 0
}

// RoleSet is a set of roles. Membership is a bit per role so a role can never
// be held twice.
type RoleSet uint8

// NewRoleSet builds a set from roles, ignoring unknown values.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.Add(r)
	}
	return s
}

func (s RoleSet) Has(r Role) bool { return r.Valid() && s&r.bit() != 0 }

func (s RoleSet) Add(r Role) RoleSet { return s | r.bit() }

func (s RoleSet) Remove(r Role) RoleSet { return s &^ r.bit() }

// With adds r when on is true and removes it otherwise.
func (s RoleSet) With(r Role, on bool) RoleSet {
	if on {
		return s.Add(r)
	}
	return s.Remove(r)
}

func (s RoleSet) IsEmpty() bool { return s == 0 }

func (s RoleSet) Len() int {
	n := 0
	for _, r := range allRoles {
		if s.Has(r) {
			n++
		}
	}
	return n
}

// Roles lists the members in display order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(allRoles))
	for _, r := range allRoles {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Strings is Roles as plain strings.
func (s RoleSet) Strings() []string {
	roles := s.Roles()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func (s RoleSet) String() string { return strings.Join(s.Strings(), ",") }

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *RoleSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out RoleSet
	for _, name := range names {
		r, err := ParseRole(name)
		if err != nil {
			return err
		}
		out = out.Add(r)
	}
	*s = out
	return nil
}
