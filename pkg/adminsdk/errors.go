package adminsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/usermgmt/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeValidation         = "validation_error"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeUserExists         = "user_exists"
	ErrorCodeToggleInFlight     = "toggle_in_flight"
	ErrorCodeNoGroupSelected    = "no_group_selected"
	ErrorCodeRemoteUpdateFailed = "remote_update_failed"
	ErrorCodeRateLimited        = "rate_limited"
	ErrorCodeServerError        = "server_error"
)

// APIError is an error response from the service. Handlers write it with
// WriteError and the client returns it for every non-2xx status.
type APIError struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes the error as JSON with its status code.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	if len(e.Details) > 0 {
		httpx.WriteJSON(w, e.StatusCode, ValidationErrorResponse{Code: e.Code, Message: e.Message, Details: e.Details})
		return
	}
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{Code: e.Code, Message: e.Message})
}

// WithMessage returns a copy of e carrying msg.
func (e *APIError) WithMessage(msg string) *APIError {
	c := *e
	c.Message = msg
	return &c
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed",
	}

	ErrNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       ErrorCodeNotFound,
		Message:    "not found",
	}

	ErrUserExists = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeUserExists,
		Message:    "a user with that email already exists",
	}

	ErrToggleInFlight = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeToggleInFlight,
		Message:    "an update for this role is already in progress",
	}

	ErrNoGroupSelected = &APIError{
		StatusCode: http.StatusPreconditionFailed,
		Code:       ErrorCodeNoGroupSelected,
		Message:    "please select a group first",
	}

	ErrRemoteUpdateFailed = &APIError{
		StatusCode: http.StatusBadGateway,
		Code:       ErrorCodeRemoteUpdateFailed,
		Message:    "the remote role update failed",
	}

	ErrRateLimited = &APIError{
		StatusCode: http.StatusTooManyRequests,
		Code:       ErrorCodeRateLimited,
		Message:    "too many requests",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// IsCode reports whether err is an *APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       valErr.Code,
			Message:    valErr.Message,
			Details:    valErr.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
