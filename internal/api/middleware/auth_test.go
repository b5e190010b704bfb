package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lumen/internal/auth"
)

func testAuthMiddleware(t *testing.T) (*AuthMiddleware, *auth.TokenIssuer) {
	t.Helper()
	tokens := auth.NewTokenIssuer([]byte("test-secret"), "lumen-test", time.Hour)
	return NewAuthMiddleware(tokens), tokens
}

// echoHandler records the identity the middleware injected
func echoHandler(gotID *uuid.UUID, gotOK *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotID, *gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	m, tokens := testAuthMiddleware(t)

	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotOK bool
	handler := m.RequireAuth(echoHandler(&gotID, &gotOK))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m, _ := testAuthMiddleware(t)

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AuthRequired")
}

func TestRequireAuth_BadToken(t *testing.T) {
	m, _ := testAuthMiddleware(t)

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	for _, header := range []string{
		"Bearer garbage",
		"Basic dXNlcjpwYXNz",
		"Bearer ",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	m, _ := testAuthMiddleware(t)

	other := auth.NewTokenIssuer([]byte("different-secret"), "lumen-test", time.Hour)
	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	m, _ := testAuthMiddleware(t)

	var gotID uuid.UUID
	var gotOK bool
	handler := m.OptionalAuth(echoHandler(&gotID, &gotOK))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "anonymous requests pass through")
	assert.False(t, gotOK)
}

func TestOptionalAuth_WithToken(t *testing.T) {
	m, tokens := testAuthMiddleware(t)

	userID := uuid.New()
	token, err := tokens.Issue(userID)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotOK bool
	handler := m.OptionalAuth(echoHandler(&gotID, &gotOK))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}
