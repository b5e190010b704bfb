package user

import (
	"encoding/json"
	"net/http"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/users"
)

const maxBodySize = 64 * 1024

// ChangePasswordHandler handles password changes for the authenticated user
type ChangePasswordHandler struct {
	users users.UserService
}

// NewChangePasswordHandler creates a new change password handler
func NewChangePasswordHandler(userService users.UserService) *ChangePasswordHandler {
	return &ChangePasswordHandler{users: userService}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleChangePassword handles PUT /api/users/me/password
func (h *ChangePasswordHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "authentication required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid request body")
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
