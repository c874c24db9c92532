package http

import (
	"net/http"

	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
)

// ScreenHandler serves the session's screen state and its simple mutations.
type ScreenHandler struct{}

// HandleGet returns the screen
//
//	@Summary		Get the screen
//	@Description	Returns the session's screen. A request without a session starts one, which selects the first group.
//	@Tags			Screen
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Success		200				{object}	adminsdk.ScreenResponse	"Screen state"
//	@Router			/v1/screen [get].
func (h *ScreenHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, toScreenResponse(mustSession(r)))
}

// HandleSelectGroup switches group
//
//	@Summary		Select a group
//	@Description	Switches the screen to a group and loads its users. An empty group clears the selection.
//	@Tags			Screen
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string						false	"Session id"
//	@Param			request			body		adminsdk.SelectGroupRequest	true	"Group to select"
//	@Success		200				{object}	adminsdk.ScreenResponse		"Screen state"
//	@Failure		400				{object}	adminsdk.ErrorResponse		"Malformed request"
//	@Failure		404				{object}	adminsdk.ErrorResponse		"Unknown group"
//	@Failure		500				{object}	adminsdk.ErrorResponse		"Users could not be loaded"
//	@Router			/v1/screen/group [put].
func (h *ScreenHandler) HandleSelectGroup(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req adminsdk.SelectGroupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := sess.Screen.SelectGroup(r.Context(), req.Group); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScreenResponse(sess))
}

// HandleSearch sets the search term
//
//	@Summary		Set the search term
//	@Description	Filters the user table by a case-insensitive email substring.
//	@Tags			Screen
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			request			body		adminsdk.SearchRequest	true	"Search term"
//	@Success		200				{object}	adminsdk.ScreenResponse	"Screen state"
//	@Failure		400				{object}	adminsdk.ErrorResponse	"Malformed request"
//	@Router			/v1/screen/search [put].
func (h *ScreenHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req adminsdk.SearchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	sess.Screen.SetSearchTerm(req.Term)
	httpx.WriteJSON(w, http.StatusOK, toScreenResponse(sess))
}

// HandleOpenDialog opens the add-user dialog
//
//	@Summary		Open the add-user dialog
//	@Tags			Screen
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Success		200				{object}	adminsdk.ScreenResponse	"Screen state"
//	@Failure		412				{object}	adminsdk.ErrorResponse	"No group selected"
//	@Router			/v1/screen/dialog [post].
func (h *ScreenHandler) HandleOpenDialog(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	if err := sess.Screen.OpenAddUserDialog(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScreenResponse(sess))
}

// HandleCloseDialog closes the add-user dialog
//
//	@Summary		Close the add-user dialog
//	@Tags			Screen
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Success		200				{object}	adminsdk.ScreenResponse	"Screen state"
//	@Router			/v1/screen/dialog [delete].
func (h *ScreenHandler) HandleCloseDialog(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	sess.Screen.CloseAddUserDialog()
	httpx.WriteJSON(w, http.StatusOK, toScreenResponse(sess))
}

// HandleNotifications drains the notification feed
//
//	@Summary		Drain notifications
//	@Description	Returns the session's queued notifications, oldest first, and clears the queue.
//	@Tags			Screen
//	@Produce		json
//	@Param			X-Session-ID	header		string							false	"Session id"
//	@Success		200				{object}	adminsdk.NotificationsResponse	"Notifications"
//	@Router			/v1/screen/notifications [get].
func (h *ScreenHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	httpx.WriteJSON(w, http.StatusOK, toNotifications(sess.Feed.Drain()))
}
