package comments

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"
)

// DeleteCommentHandler handles comment deletion
type DeleteCommentHandler struct {
	service posts.Service
}

// NewDeleteCommentHandler creates a new comment deletion handler
func NewDeleteCommentHandler(service posts.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDeleteComment handles DELETE /api/posts/{id}/comments/{commentId}
// Allowed for the comment author or the post author.
func (h *DeleteCommentHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	response, err := h.service.DeleteComment(r.Context(), callerID,
		chi.URLParam(r, "id"), chi.URLParam(r, "commentId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		handleEncodeFailure(err)
	}
}

func handleEncodeFailure(err error) {
	log.Printf("Failed to encode comment response: %v", err)
}
