package domain

import "strings"

// ValidateNewUser checks the add-user form. The email is checked first, so a
// blank email with no roles reports ErrMissingEmail.
func ValidateNewUser(email string, roles RoleSet) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingEmail
	}
	if roles.IsEmpty() {
		return ErrNoRolesSelected
	}
	return nil
}
