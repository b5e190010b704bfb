package user

import (
	"encoding/json"
	"log"
	"net/http"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/users"
)

// UpdateProfileHandler handles profile updates for the authenticated user
type UpdateProfileHandler struct {
	users users.UserService
}

// NewUpdateProfileHandler creates a new update profile handler
func NewUpdateProfileHandler(userService users.UserService) *UpdateProfileHandler {
	return &UpdateProfileHandler{users: userService}
}

// HandleUpdateProfile handles PUT /api/users/me/profile
func (h *UpdateProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "authentication required")
		return
	}

	var req users.UpdateProfileRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid request body")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		log.Printf("Failed to encode profile response: %v", err)
	}
}
