// Package client is a Go client for the studio API. It keeps the admin token
// in a TokenStore, attaches it to every request and drops it as soon as the
// server rejects it, at which point callers get ErrLoginRequired.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dom/studio-api/internal/domain"
)

// ErrLoginRequired matches any APIError with status 401
var ErrLoginRequired = errors.New("login required")

// APIError is a non-2xx response decoded from the API's error body
type APIError struct {
	StatusCode int
	Message    string
	Fields     []domain.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, ", "))
}

func (e *APIError) Is(target error) bool {
	return target == ErrLoginRequired && e.StatusCode == http.StatusUnauthorized
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
}

type Option func(*Client)

// WithHTTPClient replaces the default client; its transport is wrapped, not replaced
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.httpClient
	wrapped.Transport = &bearerTransport{base: base, tokens: tokens}
	c.httpClient = &wrapped
	return c
}

// CloseIdleConnections releases pooled connections
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

type AuthResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

type VerifyResponse struct {
	Valid bool         `json:"valid"`
	Admin domain.Admin `json:"admin"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors"`
}

// Register creates an admin and stores the returned token
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"username": username, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/admin/register", body, &out); err != nil {
		return nil, err
	}
	return &out, c.tokens.Save(out.Token)
}

// Login accepts a username or an email address as identifier
func (c *Client) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	body := map[string]string{"password": password}
	if strings.Contains(identifier, "@") {
		body["email"] = identifier
	} else {
		body["username"] = identifier
	}

	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", body, &out); err != nil {
		return nil, err
	}
	return &out, c.tokens.Save(out.Token)
}

// Logout only forgets the token; the server keeps no session
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	var out VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/admin/verify", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.Admin, error) {
	var out domain.Admin
	if err := c.do(ctx, http.MethodGet, "/admin/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) error {
	var out map[string]string
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return err
	}
	if out["status"] != "OK" {
		return fmt.Errorf("unexpected health status %q", out["status"])
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if err := json.Unmarshal(data, &e); err != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(data))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message, Fields: e.Errors}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// upload posts files as multipart/form-data under field
func (c *Client) upload(ctx context.Context, path, field string, files map[string]io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, r := range files {
		part, err := mw.CreateFormFile(field, name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, r); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.send(req, out)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
