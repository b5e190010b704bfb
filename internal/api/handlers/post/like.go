package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"
)

// LikeHandler handles like toggling
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleToggleLike handles PUT /api/posts/{id}/like
// Flips the caller's like and echoes the refreshed aggregate so the
// client can reconcile its optimistic state.
func (h *LikeHandler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	response, err := h.service.ToggleLike(r.Context(), callerID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
