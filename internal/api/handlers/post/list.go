package post

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

// ListHandler handles feed listing requests
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /api/posts?page=&limit=&userId=
// Returns a page of posts ordered newest first.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := posts.ListPostsRequest{}

	var err error
	req.Page, req.Limit, err = parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	// Optional author filter
	if userID := r.URL.Query().Get("userId"); userID != "" {
		uid, err := uuid.Parse(userID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidRequest", "invalid user ID")
			return
		}
		req.AuthorID = &uid
	}

	response, err := h.service.ListPosts(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// parsePagination reads page and limit query parameters, leaving zero
// values for the service to default.
func parsePagination(r *http.Request) (page, limit int, err error) {
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			return 0, 0, posts.NewValidationError("page", "page must be a valid integer")
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, posts.NewValidationError("limit", "limit must be a valid integer")
		}
	}
	return page, limit, nil
}
