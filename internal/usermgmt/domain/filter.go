package domain

import "strings"

// FilterUsers keeps the users whose email contains searchTerm (ignoring case)
// and who belong to selectedGroup. Input order is preserved. With no group
// selected nothing matches.
func FilterUsers(users []User, searchTerm, selectedGroup string) []User {
	if selectedGroup == "" {
		return nil
	}

	term := strings.ToLower(searchTerm)
	out := make([]User, 0, len(users))
	for _, u := range users {
		if !u.InGroup(selectedGroup) {
			continue
		}
		if !strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		out = append(out, u)
	}
	return out
}
