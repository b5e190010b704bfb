package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lumen/internal/api/middleware"
	"Lumen/internal/core/posts"
)

// mockPostService implements posts.Service for handler tests; only the
// funcs a test sets are reachable.
type mockPostService struct {
	listFunc          func(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResponse, error)
	getFunc           func(ctx context.Context, postID string) (*posts.PostView, error)
	createFunc        func(ctx context.Context, authorID uuid.UUID, content string) (*posts.PostView, error)
	updateFunc        func(ctx context.Context, callerID uuid.UUID, postID, content string) (*posts.PostView, error)
	deleteFunc        func(ctx context.Context, callerID uuid.UUID, postID string) error
	toggleLikeFunc    func(ctx context.Context, callerID uuid.UUID, postID string) (*posts.LikeResponse, error)
	addCommentFunc    func(ctx context.Context, callerID uuid.UUID, postID, content string) (*posts.AddCommentResponse, error)
	deleteCommentFunc func(ctx context.Context, callerID uuid.UUID, postID, commentID string) (*posts.DeleteCommentResponse, error)
	userPostsFunc     func(ctx context.Context, userID string, page, limit int) (*posts.UserPostsResponse, error)
}

func (m *mockPostService) ListPosts(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResponse, error) {
	return m.listFunc(ctx, req)
}

func (m *mockPostService) GetPost(ctx context.Context, postID string) (*posts.PostView, error) {
	return m.getFunc(ctx, postID)
}

func (m *mockPostService) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*posts.PostView, error) {
	return m.createFunc(ctx, authorID, content)
}

func (m *mockPostService) UpdatePost(ctx context.Context, callerID uuid.UUID, postID, content string) (*posts.PostView, error) {
	return m.updateFunc(ctx, callerID, postID, content)
}

func (m *mockPostService) DeletePost(ctx context.Context, callerID uuid.UUID, postID string) error {
	return m.deleteFunc(ctx, callerID, postID)
}

func (m *mockPostService) ToggleLike(ctx context.Context, callerID uuid.UUID, postID string) (*posts.LikeResponse, error) {
	return m.toggleLikeFunc(ctx, callerID, postID)
}

func (m *mockPostService) AddComment(ctx context.Context, callerID uuid.UUID, postID, content string) (*posts.AddCommentResponse, error) {
	return m.addCommentFunc(ctx, callerID, postID, content)
}

func (m *mockPostService) DeleteComment(ctx context.Context, callerID uuid.UUID, postID, commentID string) (*posts.DeleteCommentResponse, error) {
	return m.deleteCommentFunc(ctx, callerID, postID, commentID)
}

func (m *mockPostService) GetUserPosts(ctx context.Context, userID string, page, limit int) (*posts.UserPostsResponse, error) {
	return m.userPostsFunc(ctx, userID, page, limit)
}

// authedRequest builds a request carrying an authenticated user ID, the
// way the auth middleware would.
func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

// withURLParam attaches a chi route parameter to the request context.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateHandler_Success(t *testing.T) {
	authorID := uuid.New()
	created := &posts.PostView{ID: uuid.New(), Content: "hello"}

	service := &mockPostService{
		createFunc: func(ctx context.Context, gotAuthor uuid.UUID, content string) (*posts.PostView, error) {
			assert.Equal(t, authorID, gotAuthor)
			assert.Equal(t, "hello", content)
			return created, nil
		},
	}
	handler := NewCreateHandler(service)

	body, _ := json.Marshal(map[string]string{"content": "hello"})
	req := authedRequest(http.MethodPost, "/api/posts", body, authorID)

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var got posts.PostView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateHandler_RequiresAuth(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	body, _ := json.Marshal(map[string]string{"content": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(body))

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateHandler_ValidationError(t *testing.T) {
	service := &mockPostService{
		createFunc: func(ctx context.Context, authorID uuid.UUID, content string) (*posts.PostView, error) {
			return nil, posts.NewValidationError("content", "content is required")
		},
	}
	handler := NewCreateHandler(service)

	body, _ := json.Marshal(map[string]string{"content": "   "})
	req := authedRequest(http.MethodPost, "/api/posts", body, uuid.New())

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "InvalidRequest")
}

func TestCreateHandler_MalformedBody(t *testing.T) {
	handler := NewCreateHandler(&mockPostService{})

	req := authedRequest(http.MethodPost, "/api/posts", []byte("{not json"), uuid.New())

	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeHandler_TogglesAndEchoes(t *testing.T) {
	callerID := uuid.New()
	postID := uuid.New()

	service := &mockPostService{
		toggleLikeFunc: func(ctx context.Context, gotCaller uuid.UUID, gotPost string) (*posts.LikeResponse, error) {
			assert.Equal(t, callerID, gotCaller)
			assert.Equal(t, postID.String(), gotPost)
			return &posts.LikeResponse{
				Post:       &posts.PostView{ID: postID, Likes: []uuid.UUID{callerID}},
				Liked:      true,
				LikesCount: 1,
			}, nil
		},
	}
	handler := NewLikeHandler(service)

	req := authedRequest(http.MethodPut, "/api/posts/"+postID.String()+"/like", nil, callerID)
	req = withURLParam(req, "id", postID.String())

	w := httptest.NewRecorder()
	handler.HandleToggleLike(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var got posts.LikeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.True(t, got.Liked)
	assert.Equal(t, 1, got.LikesCount)
	require.NotNil(t, got.Post)
	assert.Equal(t, postID, got.Post.ID)
}

func TestLikeHandler_MalformedID(t *testing.T) {
	service := &mockPostService{
		toggleLikeFunc: func(ctx context.Context, callerID uuid.UUID, postID string) (*posts.LikeResponse, error) {
			return nil, posts.NewValidationError("id", "invalid post ID")
		},
	}
	handler := NewLikeHandler(service)

	req := authedRequest(http.MethodPut, "/api/posts/nope/like", nil, uuid.New())
	req = withURLParam(req, "id", "nope")

	w := httptest.NewRecorder()
	handler.HandleToggleLike(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeHandler_UnknownPost(t *testing.T) {
	postID := uuid.New()
	service := &mockPostService{
		toggleLikeFunc: func(ctx context.Context, callerID uuid.UUID, got string) (*posts.LikeResponse, error) {
			return nil, posts.NewNotFoundError("post", got)
		},
	}
	handler := NewLikeHandler(service)

	req := authedRequest(http.MethodPut, "/api/posts/"+postID.String()+"/like", nil, uuid.New())
	req = withURLParam(req, "id", postID.String())

	w := httptest.NewRecorder()
	handler.HandleToggleLike(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NotFound")
}

func TestUpdateHandler_Forbidden(t *testing.T) {
	postID := uuid.New()
	service := &mockPostService{
		updateFunc: func(ctx context.Context, callerID uuid.UUID, postID, content string) (*posts.PostView, error) {
			return nil, posts.ErrNotPostAuthor
		},
	}
	handler := NewUpdateHandler(service)

	body, _ := json.Marshal(map[string]string{"content": "edited"})
	req := authedRequest(http.MethodPut, "/api/posts/"+postID.String(), body, uuid.New())
	req = withURLParam(req, "id", postID.String())

	w := httptest.NewRecorder()
	handler.HandleUpdate(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestListHandler_PassesPaging(t *testing.T) {
	service := &mockPostService{
		listFunc: func(ctx context.Context, req posts.ListPostsRequest) (*posts.ListPostsResponse, error) {
			assert.Equal(t, 2, req.Page)
			assert.Equal(t, 10, req.Limit)
			assert.Nil(t, req.AuthorID)
			return &posts.ListPostsResponse{
				Posts:      []*posts.PostView{},
				Pagination: posts.Pagination{Page: 2, Limit: 10},
			}, nil
		},
	}
	handler := NewListHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.True(t, strings.Contains(w.Body.String(), `"pagination"`))
}
