package adminsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

// SessionHeader carries the session id for clients that do not keep cookies.
const SessionHeader = "X-Session-ID"

// Client talks to the user-management service as one session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	mu        sync.Mutex
	sessionID string
}

// NewClient creates a client with its own cookie jar, so the session cookie
// the service sets is sent back automatically.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// SessionID returns the session the service assigned, once a request has
// been made.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// SetSessionID resumes an existing session.
func (c *Client) SetSessionID(id string) {
	c.mu.Lock()
	c.sessionID = id
	c.mu.Unlock()
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doRequest sends body (JSON-encoded when not nil) and records the session
// id echoed by the service.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id := c.SessionID(); id != "" {
		req.Header.Set(SessionHeader, id)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if id := resp.Header.Get(SessionHeader); id != "" {
		c.SetSessionID(id)
	}
	return resp, nil
}

// decodeJSON reads the response into target, or returns an *APIError when
// the status is not expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return err
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/livez", nil, http.StatusOK)
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return call[HealthResponse](ctx, c, http.MethodGet, "/readyz", nil, http.StatusOK)
}

func (c *Client) ListGroups(ctx context.Context) (*GroupsResponse, error) {
	return call[GroupsResponse](ctx, c, http.MethodGet, "/v1/groups", nil, http.StatusOK)
}

// GetScreen returns the session's screen, creating the session if needed.
func (c *Client) GetScreen(ctx context.Context) (*ScreenResponse, error) {
	return call[ScreenResponse](ctx, c, http.MethodGet, "/v1/screen", nil, http.StatusOK)
}

// SelectGroup switches the screen to group. An empty group clears the
// selection.
func (c *Client) SelectGroup(ctx context.Context, group string) (*ScreenResponse, error) {
	return call[ScreenResponse](ctx, c, http.MethodPut, "/v1/screen/group", SelectGroupRequest{Group: group}, http.StatusOK)
}

func (c *Client) SetSearch(ctx context.Context, term string) (*ScreenResponse, error) {
	return call[ScreenResponse](ctx, c, http.MethodPut, "/v1/screen/search", SearchRequest{Term: term}, http.StatusOK)
}

// ToggleRole starts a role toggle. With req.Wait unset the response has
// status "pending"; otherwise it reflects the applied change, and a failed
// remote update is returned as an *APIError with code remote_update_failed.
func (c *Client) ToggleRole(ctx context.Context, req ToggleRequest) (*ToggleResponse, error) {
	expected := http.StatusAccepted
	if req.Wait {
		expected = http.StatusOK
	}
	return call[ToggleResponse](ctx, c, http.MethodPost, "/v1/screen/toggles", req, expected)
}

func (c *Client) OpenDialog(ctx context.Context) (*ScreenResponse, error) {
	return call[ScreenResponse](ctx, c, http.MethodPost, "/v1/screen/dialog", nil, http.StatusOK)
}

func (c *Client) CloseDialog(ctx context.Context) (*ScreenResponse, error) {
	return call[ScreenResponse](ctx, c, http.MethodDelete, "/v1/screen/dialog", nil, http.StatusOK)
}

// CreateUser adds a user to the selected group.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error) {
	return call[CreateUserResponse](ctx, c, http.MethodPost, "/v1/screen/users", req, http.StatusCreated)
}

// DrainNotifications returns and clears the session's pending notifications.
func (c *Client) DrainNotifications(ctx context.Context) (*NotificationsResponse, error) {
	return call[NotificationsResponse](ctx, c, http.MethodGet, "/v1/screen/notifications", nil, http.StatusOK)
}

func call[T any](ctx context.Context, c *Client, method, path string, body any, expected int) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var out T
	if err := decodeJSON(resp, &out, expected); err != nil {
		return nil, err
	}
	return &out, nil
}
