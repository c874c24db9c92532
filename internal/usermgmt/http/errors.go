package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/internal/usermgmt/domain"
	"github.com/aussiebroadwan/usermgmt/pkg/adminsdk"
	"github.com/aussiebroadwan/usermgmt/pkg/slogx"
)

// apiError maps a domain error onto the wire error the SDK understands.
func apiError(err error) *adminsdk.APIError {
	switch {
	case errors.Is(err, domain.ErrNoGroupSelected):
		return adminsdk.ErrNoGroupSelected
	case errors.Is(err, domain.ErrUnknownRole):
		return adminsdk.ErrInvalidRequest.WithMessage(err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return adminsdk.ErrNotFound.WithMessage("user not found in the selected group")
	case errors.Is(err, domain.ErrGroupNotFound):
		return adminsdk.ErrNotFound.WithMessage("group not found")
	case errors.Is(err, domain.ErrToggleInFlight):
		return adminsdk.ErrToggleInFlight
	case errors.Is(err, domain.ErrUserExists):
		return adminsdk.ErrUserExists
	case errors.Is(err, domain.ErrRemoteUpdateFailed):
		return adminsdk.ErrRemoteUpdateFailed
	case errors.Is(err, domain.ErrMissingEmail):
		return validationError("email", "Please enter an email address")
	case errors.Is(err, domain.ErrNoRolesSelected):
		return validationError("roles", "Please select at least one role")
	default:
		return adminsdk.ErrServerError
	}
}

func validationError(field, msg string) *adminsdk.APIError {
	return &adminsdk.APIError{
		StatusCode: http.StatusBadRequest,
		Code:       adminsdk.ErrorCodeValidation,
		Message:    msg,
		Details:    map[string]string{field: msg},
	}
}

// writeError logs unexpected failures and writes the mapped response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apiError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError && apiErr.StatusCode != http.StatusBadGateway {
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
	}
	apiErr.WriteError(w)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	adminsdk.ErrInvalidRequest.WithMessage(err.Error()).WriteError(w)
}
