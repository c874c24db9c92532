package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
)

type ToggleHandler struct{}

// ServeHTTP starts a role toggle
//
//	@Summary		Toggle a role
//	@Description	Grants (checked=true) or revokes a role on a user of the selected group through the remote role service.
//	@Description	The pair is marked loading until the remote call resolves; the outcome is queued as a notification.
//	@Description	With wait=true the request blocks until then and reports the outcome directly.
//	@Tags			Screen
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string					false	"Session id"
//	@Param			request			body		adminsdk.ToggleRequest	true	"Toggle"
//	@Success		200				{object}	adminsdk.ToggleResponse	"Applied (wait=true)"
//	@Success		202				{object}	adminsdk.ToggleResponse	"Started"
//	@Failure		400				{object}	adminsdk.ErrorResponse	"Malformed request or unknown role"
//	@Failure		404				{object}	adminsdk.ErrorResponse	"User not in the selected group"
//	@Failure		409				{object}	adminsdk.ErrorResponse	"A toggle for this user and role is already running"
//	@Failure		412				{object}	adminsdk.ErrorResponse	"No group selected"
//	@Failure		502				{object}	adminsdk.ErrorResponse	"Remote update failed (wait=true)"
//	@Router			/v1/screen/toggles [post].
func (h *ToggleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req adminsdk.ToggleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The toggle outlives the request unless the caller waits for it.
	done, err := sess.Screen.StartToggle(context.WithoutCancel(r.Context()), req.Email, role, req.Checked)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := adminsdk.ToggleResponse{
		Email:   req.Email,
		Role:    role.String(),
		Checked: req.Checked,
		Status:  adminsdk.ToggleStatusPending,
	}
	if !req.Wait {
		httpx.WriteJSON(w, http.StatusAccepted, response)
		return
	}

	select {
	case err = <-done:
	case <-r.Context().Done():
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	response.Status = adminsdk.ToggleStatusSucceeded
	if u, ok := sess.Screen.User(req.Email); ok {
		response.Email = u.Email
		response.Roles = u.Roles.Strings()
	}
	httpx.WriteJSON(w, http.StatusOK, response)
}
