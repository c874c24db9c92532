package domain

import "errors"

var (
	ErrNoGroupSelected    = errors.New("no group selected")
	ErrMissingEmail       = errors.New("email is required")
	ErrNoRolesSelected    = errors.New("at least one role is required")
	ErrRemoteUpdateFailed = errors.New("remote role update failed")

	ErrToggleInFlight = errors.New("role update already in progress")
	ErrUnknownRole    = errors.New("unknown role")
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrGroupNotFound  = errors.New("group not found")
)
