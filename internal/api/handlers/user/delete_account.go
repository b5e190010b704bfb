package user

import (
	"encoding/json"
	"net/http"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/users"
)

// DeleteAccountHandler handles account deletion for the authenticated
// user
type DeleteAccountHandler struct {
	users users.UserService
}

// NewDeleteAccountHandler creates a new delete account handler
func NewDeleteAccountHandler(userService users.UserService) *DeleteAccountHandler {
	return &DeleteAccountHandler{users: userService}
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

// HandleDeleteAccount handles DELETE /api/users/me/account
// The password is re-verified before anything is removed; deleting the
// account also deletes every post the user authored.
func (h *DeleteAccountHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "authentication required")
		return
	}

	var req deleteAccountRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid request body")
		return
	}

	if err := h.users.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
