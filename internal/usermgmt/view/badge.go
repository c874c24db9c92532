package view

import "github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"

const badgeBase = "role-badge"

var badgeSuffix = map[domain.Role]string{
	domain.RoleAdmin:             "admin",
	domain.RoleActive:            "active",
	domain.RolePopulate:          "populate",
	domain.RoleWrite:             "write",
	domain.RoleResolutionManager: "resolution",
	domain.RoleUsersManager:      "users",
}

// BadgeClass returns the CSS classes for a role badge. Unknown roles get the
// base class only.
func BadgeClass(role domain.Role) string {
	if suffix, ok := badgeSuffix[role]; ok {
		return badgeBase + " " + badgeBase + "-" + suffix
	}
	return badgeBase
}
