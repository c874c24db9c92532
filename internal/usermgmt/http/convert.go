package http

import (
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/notify"
	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/screen"
	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
)

func toScreenResponse(sess *screen.Session) adminsdk.ScreenResponse {
	snap := sess.Screen.Snapshot()

	users := make([]adminsdk.UserRow, len(snap.Users))
	for i, u := range snap.Users {
		toggles := make([]adminsdk.RoleToggle, len(u.Toggles))
		for j, t := range u.Toggles {
			toggles[j] = adminsdk.RoleToggle{Role: t.Role.String(), Checked: t.Checked, Loading: t.Loading}
		}
		users[i] = adminsdk.UserRow{
			Email:      u.Email,
			Roles:      u.Roles.Strings(),
			LastActive: u.LastActive,
			Toggles:    toggles,
		}
	}

	return adminsdk.ScreenResponse{
		SessionID:     sess.ID.String(),
		Groups:        snap.Groups,
		SelectedGroup: snap.SelectedGroup,
		SearchTerm:    snap.SearchTerm,
		Users:         users,
		Pending:       snap.Pending,
		Dialog: adminsdk.DialogState{
			Open:  snap.Dialog.Open,
			Group: snap.Dialog.Group,
			Email: snap.Dialog.Email,
			Roles: snap.Dialog.Roles.Strings(),
		},
	}
}

func toNotifications(ns []notify.Notification) adminsdk.NotificationsResponse {
	out := adminsdk.NotificationsResponse{Notifications: make([]adminsdk.NotificationResponse, len(ns))}
	for i, n := range ns {
		out.Notifications[i] = adminsdk.NotificationResponse{
			ID:       n.ID.String(),
			Severity: string(n.Severity),
			Message:  n.Message,
			At:       n.At,
		}
	}
	return out
}

// parseRoles accepts role names in any case and rejects unknown ones.
func parseRoles(names []string) (domain.RoleSet, error) {
	var set domain.RoleSet
	for _, name := range names {
		role, err := domain.ParseRole(name)
		if err != nil {
			return 0, err
		}
		set = set.Add(role)
	}
	return set, nil
}
