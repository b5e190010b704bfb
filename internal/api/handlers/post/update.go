package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"
)

// UpdateHandler handles post content edits
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{service: service}
}

// HandleUpdate handles PUT /api/posts/{id}
// Only the post author may edit content.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	req, ok := decodeContent(w, r)
	if !ok {
		return
	}

	view, err := h.service.UpdatePost(r.Context(), callerID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
