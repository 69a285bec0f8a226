// Package client is the Go SDK for the athlete tracker API: a thin,
// session-aware HTTP client plus the roster/test-score cache and the
// leaderboard enrichment used by dashboard frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fitpulse/athlete-tracker/models"
)

var (
	// ErrUnauthorized is returned after a 401; the session has already
	// been cleared by the time the caller sees it.
	ErrUnauthorized = errors.New("session expired or unauthorized")

	// ErrRoleMismatch is returned by Login when the account's role does
	// not match the role the user selected. No session is established.
	ErrRoleMismatch = errors.New("account role does not match the selected role")
)

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the remote API. Every request carries the bearer token
// from the session store when one exists; any 401 clears the session and
// fires the OnUnauthorized hook. That policy lives here, in do, so no
// caller has to special-case it.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionStore

	// OnUnauthorized, if set, runs after a 401 has cleared the session.
	// The CLI uses it to tell the user to log in again; a UI would route
	// to its login surface.
	OnUnauthorized func()
}

func New(baseURL string, session *SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		session: session,
	}
}

// Session exposes the store for read accessors (IsCoach, Current).
func (c *Client) Session() *SessionStore {
	return c.session
}

// Login exchanges credentials for a session. The server-returned role
// must match expectedRole; on mismatch no session is established and
// ErrRoleMismatch is returned. All failures come back as errors with
// human-readable messages, never panics.
func (c *Client) Login(ctx context.Context, email, password string, expectedRole models.UserRole) error {
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}

	body := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return err
	}

	if out.User.Role != expectedRole {
		return fmt.Errorf("%w: your role is %q", ErrRoleMismatch, out.User.Role)
	}

	identity := Identity{
		ID:    out.User.ID,
		Email: out.User.Email,
		Name:  out.User.Name,
		Role:  out.User.Role,
		Token: out.Token,
	}
	if err := c.session.set(identity); err != nil {
		// Session is live in memory; persistence failure is not fatal.
		return nil
	}
	return nil
}

// Logout clears the session. No remote call is needed for it to succeed.
func (c *Client) Logout() {
	c.session.Clear()
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil && len(envelope.Error) > 0 {
		var msg string
		if json.Unmarshal(envelope.Error, &msg) == nil {
			apiErr.Message = msg
		} else {
			apiErr.Message = string(envelope.Error)
		}
	} else if trimmed := strings.TrimSpace(string(data)); trimmed != "" {
		apiErr.Message = trimmed
	}

	return apiErr
}
