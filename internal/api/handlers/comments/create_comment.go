package comments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"
)

const maxBodySize = 64 * 1024

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	service posts.Service
}

// NewCreateCommentHandler creates a new comment creation handler
func NewCreateCommentHandler(service posts.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreateComment handles POST /api/posts/{id}/comments
// Appends a comment and returns the canonical entity the client uses
// to replace its optimistic placeholder.
func (h *CreateCommentHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	response, err := h.service.AddComment(r.Context(), callerID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		handleEncodeFailure(err)
	}
}
