package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Lumen/internal/auth"
	"Lumen/internal/core/users"
)

// LoginHandler handles credential verification
type LoginHandler struct {
	users  users.UserService
	tokens *auth.TokenIssuer
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(userService users.UserService, tokens *auth.TokenIssuer) *LoginHandler {
	return &LoginHandler{
		users:  userService,
		tokens: tokens,
	}
}

// HandleLogin handles POST /api/auth/login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Failed to issue token after login: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sessionResponse{User: user, Token: token}); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}
