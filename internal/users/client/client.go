// Package usersclient is an HTTP client for the /api/users resource.
package usersclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/odyssey-erp/admin-console/internal/users"
)

// APIError is returned when the server reports a failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("users api: status %d", e.Status)
	}
	return fmt.Sprintf("users api: status %d: %s", e.Status, e.Message)
}

// Client wraps calls to the users API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new client. A nil httpClient gets a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// List fetches one page of users. Zero paging fields are left to server defaults.
func (c *Client) List(ctx context.Context, params users.ListParams) (users.ListResult, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(params.PageSize))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	path := "/api/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out users.ListResult
	_, err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Get fetches a single user.
func (c *Client) Get(ctx context.Context, id int64) (users.User, error) {
	var out users.User
	_, err := c.do(ctx, http.MethodGet, userPath(id), nil, &out)
	return out, err
}

// Create adds a user and returns it with the server-assigned id.
func (c *Client) Create(ctx context.Context, in users.CreateInput) (users.User, string, error) {
	var out users.User
	msg, err := c.do(ctx, http.MethodPost, "/api/users", in, &out)
	return out, msg, err
}

// Update applies a partial update.
func (c *Client) Update(ctx context.Context, id int64, in users.UpdateInput) (users.User, string, error) {
	var out users.User
	msg, err := c.do(ctx, http.MethodPut, userPath(id), in, &out)
	return out, msg, err
}

// Delete removes a user and returns its last state.
func (c *Client) Delete(ctx context.Context, id int64) (users.User, string, error) {
	var out users.User
	msg, err := c.do(ctx, http.MethodDelete, userPath(id), nil, &out)
	return out, msg, err
}

// DeleteMany removes every listed user.
func (c *Client) DeleteMany(ctx context.Context, ids []int64) ([]users.User, string, error) {
	var out []users.User
	msg, err := c.do(ctx, http.MethodDelete, "/api/users", map[string][]int64{"ids": ids}, &out)
	return out, msg, err
}

// SetStatus changes a user's status.
func (c *Client) SetStatus(ctx context.Context, id int64, status users.Status) (users.User, string, error) {
	var out users.User
	msg, err := c.do(ctx, http.MethodPatch, userPath(id)+"/status", map[string]users.Status{"status": status}, &out)
	return out, msg, err
}

func userPath(id int64) string {
	return "/api/users/" + strconv.FormatInt(id, 10)
}

// do sends the request and decodes the envelope's data into out. It returns
// the envelope message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("users api: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return "", &APIError{Status: resp.StatusCode}
		}
		return "", fmt.Errorf("users api: decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return env.Message, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, fmt.Errorf("users api: decode data: %w", err)
		}
	}
	return env.Message, nil
}
