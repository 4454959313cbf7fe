// Package client is the session channel to the chat gateway: one logical
// session id, bound server-side to one underlying connection, with a
// request/response Send and a batch-draining Poll. The channel never retries
// on its own; callers own retry policy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"parley/internal/protocol"
	"parley/internal/types"
)

const defaultBaseURL = "http://127.0.0.1:8000"

type Client struct {
	baseURL string
	sid     string
	http    *http.Client
}

// New returns a channel bound to baseURL with a fresh session id. The id is
// generated per process and never persisted; a restart is a new session.
func New(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		sid:     uuid.NewString(),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID returns the opaque per-process session token.
func (c *Client) SessionID() string {
	return c.sid
}

// Send performs one command and returns its correlated result. An ERROR or
// AUTH_FAIL result is returned as a *protocol.CommandError; transport
// failures are returned as-is.
func (c *Client) Send(ctx context.Context, cmd protocol.Command) (*protocol.Result, error) {
	var result protocol.Result
	if err := c.doJSON(ctx, http.MethodPost, "/api/send", cmd, &result); err != nil {
		return nil, err
	}
	if err := result.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// Poll drains the events accumulated server-side since the last poll for
// this session. Delivery is at least once in best-effort order; duplicates
// are the dispatcher's problem.
func (c *Client) Poll(ctx context.Context) ([]protocol.Event, error) {
	var resp struct {
		Messages []protocol.Event `json:"messages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/poll", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Login authenticates and returns the authenticated user.
func (c *Client) Login(ctx context.Context, username, password string) (*types.User, error) {
	result, err := c.Send(ctx, protocol.Login(username, password))
	if err != nil {
		return nil, err
	}
	return result.User()
}

// Register creates an account. The caller logs in separately afterwards.
func (c *Client) Register(ctx context.Context, username, password string) error {
	_, err := c.Send(ctx, protocol.Register(username, password))
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + path + "?sid=" + url.QueryEscape(c.sid)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

// APIError is a gateway-level (transport) rejection, as opposed to an
// application-level protocol.CommandError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("gateway error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
