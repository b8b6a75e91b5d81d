package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	tokens := &MemoryTokenStore{}
	c := New(srv.URL, tokens)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})
	return c, tokens
}

func TestClient_LoginStoresToken(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantField  string
	}{
		{name: "by username", identifier: "rsadmin", wantField: "username"},
		{name: "by email", identifier: "admin@studio.test", wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/admin/login", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, `{"token":"tok-123","admin":{"username":"rsadmin"}}`)
			})

			resp, err := c.Login(context.Background(), tt.identifier, "secret1")
			require.NoError(t, err)
			assert.Equal(t, "rsadmin", resp.Admin.Username)
			assert.Equal(t, tt.identifier, got[tt.wantField])
			assert.Equal(t, "secret1", got["password"])

			stored, _ := tokens.Load()
			assert.Equal(t, "tok-123", stored)
		})
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var authHeader string
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		io.WriteString(w, `{"id":"5b8f2a0e-1c53-4d8e-9a41-3c1f0e2d7b6a","username":"rsadmin"}`)
	})
	require.NoError(t, tokens.Save("tok-abc"))

	admin, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rsadmin", admin.Username)
	assert.Equal(t, "Bearer tok-abc", authHeader)
}

func TestClient_UnauthorizedClearsToken(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Token is not valid"}`)
	})
	require.NoError(t, tokens.Save("expired-token"))

	_, err := c.Verify(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLoginRequired))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Token is not valid", apiErr.Message)

	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestClient_ValidationErrorFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"message":"Validation failed","errors":[{"field":"email","message":"A valid email is required"}]}`)
	})

	_, err := c.SubmitContact(context.Background(), ContactRequest{Name: "Ann", Email: "nope", Message: "hi"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLoginRequired))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "email", apiErr.Fields[0].Field)
	assert.Contains(t, apiErr.Error(), "email: A valid email is required")
}

func TestClient_ListAllCommentsQuery(t *testing.T) {
	var query string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/comments/all", r.URL.Path)
		query = r.URL.RawQuery
		io.WriteString(w, `[{"id":"5b8f2a0e-1c53-4d8e-9a41-3c1f0e2d7b6a","serviceName":"weddings","approved":false}]`)
	})

	pending := false
	comments, err := c.ListAllComments(context.Background(), "weddings", &pending)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.False(t, comments[0].Approved)
	assert.Equal(t, "approved=false&serviceName=weddings", query)
}

func TestClient_UploadImage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		f, fh, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "cake.png", fh.Filename)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"url":"/uploads/2026/10/a.png","filename":"cake.png"}`)
	})

	stored, err := c.UploadImage(context.Background(), "cake.png", strings.NewReader("fake"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/2026/10/a.png", stored.URL)
}

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("tok-file"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-file", token)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
