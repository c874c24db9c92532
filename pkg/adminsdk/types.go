package adminsdk

import "time"

// ============================================================================
// Error Response Types
// ============================================================================

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	// Code is a stable machine-readable error code (e.g. "not_found")
	Code string `json:"code"`

	// Message is the human-readable description
	Message string `json:"message"`
}

// ValidationErrorResponse is returned when a request body fails validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details maps field names to what is wrong with them
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" when healthy
	Status string `json:"status"`

	// Uptime is the service uptime (e.g. "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks holds per-dependency results (readyz only)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports "ok" or "error: ..." per dependency.
type HealthChecks struct {
	Database string `json:"database"`
}

// ============================================================================
// Groups
// ============================================================================

type GroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ============================================================================
// Screen
// ============================================================================

// RoleToggle is one role checkbox for one user.
type RoleToggle struct {
	Role    string `json:"role"`
	Checked bool   `json:"checked"`
	Loading bool   `json:"loading"`
}

// UserRow is a user as shown in the table.
type UserRow struct {
	Email      string       `json:"email"`
	Roles      []string     `json:"roles"`
	LastActive string       `json:"last_active,omitempty"`
	Toggles    []RoleToggle `json:"toggles"`
}

type DialogState struct {
	Open  bool     `json:"open"`
	Group string   `json:"group,omitempty"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// ScreenResponse is the full state of a session's screen. Users holds only
// the rows that pass the group and search filters.
type ScreenResponse struct {
	SessionID     string      `json:"session_id"`
	Groups        []string    `json:"groups"`
	SelectedGroup string      `json:"selected_group"`
	SearchTerm    string      `json:"search_term"`
	Users         []UserRow   `json:"users"`
	Pending       int         `json:"pending"`
	Dialog        DialogState `json:"dialog"`
}

type SelectGroupRequest struct {
	// Group to select; empty clears the selection
	Group string `json:"group"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

// ============================================================================
// Toggles
// ============================================================================

// ToggleRequest asks for role to be granted (Checked) or revoked on a user of
// the selected group.
type ToggleRequest struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Checked bool   `json:"checked"`

	// Wait blocks the request until the remote update resolves
	Wait bool `json:"wait,omitempty"`
}

const (
	ToggleStatusPending   = "pending"
	ToggleStatusSucceeded = "succeeded"
)

type ToggleResponse struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	Checked bool   `json:"checked"`

	// Status is "pending" for 202 responses and "succeeded" once applied
	Status string `json:"status"`

	// Roles is the user's role set after the toggle (waited calls only)
	Roles []string `json:"roles,omitempty"`
}

// ============================================================================
// Users
// ============================================================================

type CreateUserRequest struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// CreateUserResponse echoes what was created and where.
type CreateUserResponse struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	Group string   `json:"group"`
}

// ============================================================================
// Notifications
// ============================================================================

type NotificationResponse struct {
	ID       string    `json:"id"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

type NotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}
