// Package api is the HTTP client for the StreamVerse server. It speaks the
// same flat JSON wire shapes the server emits and never interprets payloads
// beyond decoding them.
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
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server, carrying the status code and
// the server's {"message": "..."} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server answered %d: %s", e.Status, e.Message)
}

// TransportError wraps a failure to reach the server at all. Callers use it
// to tell "server said no" apart from "server never answered".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// User is the sanitized account projection returned by the server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FavouriteItem is one favourites entry on the wire.
type FavouriteItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Status      string    `json:"status,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfileRequest carries profile changes. Empty fields are ignored by
// the server.
type UpdateProfileRequest struct {
	Email        string `json:"email,omitempty"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	AvatarBase64 string `json:"avatarBase64,omitempty"`
}

type favouritesResponse struct {
	Items []FavouriteItem `json:"items"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client talks to one StreamVerse server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// Register creates a new account and returns the session for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	body := map[string]string{"identifier": identifier, "password": password}

	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Me fetches the profile the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/profile/me", token, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateProfile submits profile changes and returns the updated profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, req UpdateProfileRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/profile", token, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteAccount removes the account the token belongs to.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/profile", token, nil, nil)
}

// ListFavourites fetches the complete favourites list.
func (c *Client) ListFavourites(ctx context.Context, token string) ([]FavouriteItem, error) {
	var out favouritesResponse
	if err := c.do(ctx, http.MethodGet, "/api/favourites", token, nil, &out); err != nil {
		return nil, err
	}

	return out.Items, nil
}

// AddFavourite saves one item and returns the complete resulting list.
func (c *Client) AddFavourite(ctx context.Context, token string, item FavouriteItem) ([]FavouriteItem, error) {
	body := map[string]string{
		"id":          item.ID,
		"type":        item.Type,
		"title":       item.Title,
		"description": item.Description,
		"image":       item.Image,
		"status":      item.Status,
	}

	var out favouritesResponse
	if err := c.do(ctx, http.MethodPost, "/api/favourites", token, body, &out); err != nil {
		return nil, err
	}

	return out.Items, nil
}

// RemoveFavourite drops one item and returns the complete resulting list.
func (c *Client) RemoveFavourite(ctx context.Context, token, itemID string) ([]FavouriteItem, error) {
	var out favouritesResponse
	path := "/api/favourites/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &out); err != nil {
		return nil, err
	}

	return out.Items, nil
}

// do runs one request/response cycle. A transport failure surfaces as
// *TransportError and any non-2xx status as *APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr != nil || errBody.Message == "" {
			errBody.Message = http.StatusText(resp.StatusCode)
		}

		return &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}
