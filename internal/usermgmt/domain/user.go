package domain

import "slices"

type User struct {
	Email      string
	Roles      RoleSet
	LastActive string   // YYYY-MM-DD, empty when the user has never been active
	Groups     []string // Group names
}

// InGroup reports whether the user belongs to the named group.
func (u User) InGroup(name string) bool {
	return slices.Contains(u.Groups, name)
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.Groups = slices.Clone(u.Groups)
	return u
}

// NewUser is the payload emitted when a user is added to a group.
type NewUser struct {
	Email string
	Roles RoleSet
	Group string
}

// RoleChange describes a single role toggle for a user within a group.
type RoleChange struct {
	Email   string
	Role    Role
	Group   string
	Granted bool // true adds the role, false removes it
}
