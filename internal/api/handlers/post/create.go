package post

import (
	"encoding/json"
	"net/http"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"
)

// Body size cap for post and comment writes. Content is at most 1000
// characters; 64KB leaves room for JSON overhead while preventing
// abuse.
const maxBodySize = 64 * 1024

type contentRequest struct {
	Content string `json:"content"`
}

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /api/posts
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	req, ok := decodeContent(w, r)
	if !ok {
		return
	}

	view, err := h.service.CreatePost(r.Context(), callerID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// decodeContent parses a {content} body, writing the error response
// itself on failure.
func decodeContent(w http.ResponseWriter, r *http.Request) (contentRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large")
			return req, false
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return req, false
	}

	return req, true
}
