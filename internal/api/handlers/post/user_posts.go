package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Lumen/internal/core/posts"
)

// UserPostsHandler handles per-author feed retrieval
type UserPostsHandler struct {
	service posts.Service
}

// NewUserPostsHandler creates a new user posts handler
func NewUserPostsHandler(service posts.Service) *UserPostsHandler {
	return &UserPostsHandler{service: service}
}

// HandleGetUserPosts handles GET /api/posts/user/{userId}?page=&limit=
// Returns the author's posts plus their minimal profile.
func (h *UserPostsHandler) HandleGetUserPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	response, err := h.service.GetUserPosts(r.Context(), chi.URLParam(r, "userId"), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
