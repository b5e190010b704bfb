package user

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"Lumen/internal/core/users"
)

// GetUserHandler handles public profile retrieval
type GetUserHandler struct {
	users users.UserService
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(userService users.UserService) *GetUserHandler {
	return &GetUserHandler{users: userService}
}

// HandleGetUser handles GET /api/users/{id}
func (h *GetUserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid user ID")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		log.Printf("Failed to encode user response: %v", err)
	}
}
