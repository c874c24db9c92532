package domain

// Fixtures is the static directory the screen was designed against: three
// groups and two users. It seeds empty stores.
type Fixtures struct {
	Groups []string
	Users  []User
}

func DefaultFixtures() Fixtures {
	return Fixtures{
		Groups: []string{"Engineering", "Product", "Design"},
		Users: []User{
			{
				Email:      "aaron.smith@example.com",
				Roles:      NewRoleSet(RoleActive),
				LastActive: "2022-06-30",
				Groups:     []string{"Engineering", "Product"},
			},
			{
				Email:      "sarah.j@example.com",
				Roles:      NewRoleSet(RoleAdmin, RoleUsersManager),
				LastActive: "2023-12-15",
				Groups:     []string{"Engineering"},
			},
		},
	}
}
