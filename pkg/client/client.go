// Package client is a Go consumer for the credtrack HTTP API. It keeps
// the token pair, refreshes the session, and answers route-guard
// questions for callers that render role-gated views.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// User is the identity payload the API returns on login and refresh.
type User struct {
	ID       uuid.UUID  `json:"id"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	SchoolID *uuid.UUID `json:"school_id,omitempty"`
	FullName string     `json:"full_name"`
	Major    string     `json:"major,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authPayload struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type authEnvelope struct {
	envelope
	Data authPayload `json:"data"`
}

type Client struct {
	http *resty.Client

	mu     sync.RWMutex
	tokens TokenPair
	user   User
	has    bool
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Login authenticates and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out authEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/api/v1/auth/login")
	if err != nil {
		return User{}, err
	}
	if err := statusError(resp); err != nil {
		return User{}, err
	}

	c.store(out.Data)
	return out.Data.User, nil
}

// Refresh exchanges the stored refresh token for a new pair and the
// current identity.
func (c *Client) Refresh(ctx context.Context) (User, error) {
	c.mu.RLock()
	refresh := c.tokens.RefreshToken
	c.mu.RUnlock()
	if refresh == "" {
		return User{}, ErrUnauthorized
	}

	var out authEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"refresh_token": refresh}).
		SetResult(&out).
		Post("/api/v1/auth/refresh")
	if err != nil {
		return User{}, err
	}
	if err := statusError(resp); err != nil {
		return User{}, err
	}

	c.store(out.Data)
	return out.Data.User, nil
}

// SetTokens primes the client with a persisted pair, e.g. from disk.
func (c *Client) SetTokens(pair TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = pair
	c.has = pair.RefreshToken != "" || pair.AccessToken != ""
	c.user = User{}
}

func (c *Client) Tokens() TokenPair {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// Get performs an authenticated GET and decodes the envelope's data into
// out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, "GET", path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, "POST", path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, "PUT", path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, "DELETE", path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	c.mu.RLock()
	access := c.tokens.AccessToken
	c.mu.RUnlock()
	if access == "" {
		return ErrUnauthorized
	}

	type dataEnvelope struct {
		envelope
		Data any `json:"data"`
	}
	result := dataEnvelope{Data: out}

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(access).
		SetResult(&result)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return statusError(resp)
}

func (c *Client) store(data authPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = TokenPair{AccessToken: data.AccessToken, RefreshToken: data.RefreshToken}
	c.user = data.User
	c.has = true
}

func statusError(resp *resty.Response) error {
	switch code := resp.StatusCode(); {
	case code < 300:
		return nil
	case code == 401:
		return ErrUnauthorized
	case code == 403:
		return ErrForbidden
	case code == 404:
		return ErrNotFound
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
