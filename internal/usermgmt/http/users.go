package http

import (
	"net/http"

	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
)

type CreateUserHandler struct{}

// ServeHTTP adds a user to the selected group
//
//	@Summary		Add a user
//	@Description	Creates a user with the given roles in the selected group and closes the add-user dialog.
//	@Tags			Screen
//	@Accept			json
//	@Produce		json
//	@Param			X-Session-ID	header		string								false	"Session id"
//	@Param			request			body		adminsdk.CreateUserRequest			true	"New user"
//	@Success		201				{object}	adminsdk.CreateUserResponse			"Created"
//	@Failure		400				{object}	adminsdk.ValidationErrorResponse	"Missing email or no roles"
//	@Failure		409				{object}	adminsdk.ErrorResponse				"User already exists"
//	@Failure		412				{object}	adminsdk.ErrorResponse				"No group selected"
//	@Failure		500				{object}	adminsdk.ErrorResponse				"Internal server error"
//	@Router			/v1/screen/users [post].
func (h *CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)

	var req adminsdk.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	roles, err := parseRoles(req.Roles)
	if err != nil {
		validationError("roles", err.Error()).WriteError(w)
		return
	}

	nu, err := sess.Screen.AddUser(r.Context(), req.Email, roles)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.CreateUserResponse{
		Email: nu.Email,
		Roles: nu.Roles.Strings(),
		Group: nu.Group,
	})
}
