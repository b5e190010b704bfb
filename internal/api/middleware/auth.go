package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"Lumen/internal/auth"
)

// Context keys for storing caller identity
type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware enforces Bearer JWT authentication for protected
// routes and injects the caller's user ID into the request context.
type AuthMiddleware struct {
	tokens *auth.TokenIssuer
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth ensures the request carries a valid token; 401 otherwise.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.callerFromHeader(r)
		if !ok {
			log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s", r.RemoteAddr, r.Method, r.URL.Path)
			writeAuthError(w, "Invalid or missing token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the caller identity if a valid token is present,
// but lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := m.callerFromHeader(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) callerFromHeader(r *http.Request) (uuid.UUID, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return uuid.Nil, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	userID, err := m.tokens.Verify(token)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// GetUserID returns the authenticated caller's ID from the request
// context. ok is false on anonymous requests.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// WithUserID injects a caller identity into a context. Intended for
// handler tests that bypass the middleware.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode auth error response: %v", err)
	}
}
