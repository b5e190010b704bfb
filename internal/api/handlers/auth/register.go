package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"Lumen/internal/auth"
	"Lumen/internal/core/users"
)

const maxBodySize = 64 * 1024

// sessionResponse is returned by register, login, and refresh.
type sessionResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// RegisterHandler handles account creation
type RegisterHandler struct {
	users  users.UserService
	tokens *auth.TokenIssuer
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(userService users.UserService, tokens *auth.TokenIssuer) *RegisterHandler {
	return &RegisterHandler{
		users:  userService,
		tokens: tokens,
	}
}

// HandleRegister handles POST /api/auth/register
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req users.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Printf("Failed to issue token after registration: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(sessionResponse{User: user, Token: token}); err != nil {
		log.Printf("Failed to encode register response: %v", err)
	}
}
