package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Lumen/internal/api/middleware"
	"Lumen/internal/auth"
	"Lumen/internal/core/users"
)

// MeHandler returns the authenticated account and refreshes tokens
type MeHandler struct {
	users  users.UserService
	tokens *auth.TokenIssuer
}

// NewMeHandler creates a new me handler
func NewMeHandler(userService users.UserService, tokens *auth.TokenIssuer) *MeHandler {
	return &MeHandler{
		users:  userService,
		tokens: tokens,
	}
}

// HandleMe handles GET /api/auth/me
func (h *MeHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		log.Printf("Failed to encode me response: %v", err)
	}
}

// HandleRefresh handles POST /api/auth/refresh
// Issues a fresh token for an already-authenticated caller.
func (h *MeHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Failed to refresh token: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sessionResponse{User: user, Token: token}); err != nil {
		log.Printf("Failed to encode refresh response: %v", err)
	}
}

func (h *MeHandler) currentUser(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return nil, false
	}

	user, err := h.users.GetByID(r.Context(), callerID)
	if err != nil {
		handleServiceError(w, err)
		return nil, false
	}
	return user, true
}
