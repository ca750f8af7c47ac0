// Package api is the HTTP/JSON client for the Rosebud backend. It is the
// only component that talks to the network; everything it returns is handed
// to the sync rail for reconciliation with the local store.
//
// Failure contract: a transport error or any non-2xx status is the sole
// failure signal. The client never retries; retry happens naturally on the
// next sync attempt.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rosebudapp/rosebud/internal/client/models"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// Client talks to one Rosebud server. Safe for concurrent use once the
// token is set.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a Client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return NewWithTimeout(baseURL, 15*time.Second)
}

// NewWithTimeout returns a Client with an explicit per-request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// AuthResponse carries the authenticated user and their access token.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (c *Client) Register(ctx context.Context, username, password, name, email string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil,
		credentials{Username: username, Password: password, Name: name, Email: email}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", nil,
		credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+id, nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	var out []models.Entry
	q := url.Values{"user_id": {userID}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Entry{}
	}
	return out, nil
}

func (c *Client) ListGroupEntries(ctx context.Context, groupID string) ([]models.Entry, error) {
	var out []models.Entry
	q := url.Values{"group_id": {groupID}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/entries", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Entry{}
	}
	return out, nil
}

func (c *Client) CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	var out models.Entry
	if err := c.do(ctx, http.MethodPost, "/api/v1/entries", nil, entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	var out models.Entry
	if err := c.do(ctx, http.MethodPut, "/api/v1/entries/"+entry.ID, nil, entry, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/entries/"+id, nil, nil, nil)
}

func (c *Client) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	var g models.Group
	if err := c.do(ctx, http.MethodGet, "/api/v1/groups/"+id, nil, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *Client) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	var g models.Group
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/v1/groups", nil, body, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// JoinResponse is returned by the join-by-code endpoint. The server hands
// back the membership it created so the client can cache the authoritative
// membership id instead of synthesizing one.
type JoinResponse struct {
	Group      models.Group      `json:"group"`
	Membership models.Membership `json:"membership"`
}

func (c *Client) JoinGroup(ctx context.Context, joinCode string) (*JoinResponse, error) {
	var out JoinResponse
	body := map[string]string{"join_code": joinCode}
	if err := c.do(ctx, http.MethodPost, "/api/v1/groups/join", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMemberships(ctx context.Context, userID string) ([]models.Membership, error) {
	var out []models.Membership
	q := url.Values{"user_id": {userID}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/members", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Membership{}
	}
	return out, nil
}

func (c *Client) ListGroupMembers(ctx context.Context, groupID string) ([]models.Membership, error) {
	var out []models.Membership
	q := url.Values{"group_id": {groupID}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/members", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Membership{}
	}
	return out, nil
}

func (c *Client) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	var out []models.Tag
	q := url.Values{"user_id": {userID}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/tags", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Tag{}
	}
	return out, nil
}

func (c *Client) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	var out models.Tag
	if err := c.do(ctx, http.MethodPost, "/api/v1/tags", nil, tag, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tags/"+id, nil, nil, nil)
}
