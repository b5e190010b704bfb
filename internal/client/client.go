package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

// Client is a Go SDK for the posts API. Mutating calls go through the
// optimistic feed cache: likes and comment adds apply locally first and
// reconcile against the canonical server response.
type Client struct {
	baseURL string
	http    *http.Client

	token  string
	userID uuid.UUID
	author *posts.AuthorView

	// Feed holds the client's view of the feed.
	Feed *Cache
}

// APIError is a decoded error body from the server.
type APIError struct {
	Status  int    `json:"-"`
	Type    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Type, e.Message)
}

// New creates a client against baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		Feed:    NewCache(),
	}
}

// SetAuth attaches the bearer token and identity used for authenticated
// calls and for rendering optimistic placeholders.
func (c *Client) SetAuth(token string, user *posts.AuthorView) {
	c.token = token
	if user != nil {
		c.userID = user.ID
	}
	c.author = user
}

// FetchPosts loads a feed page and resets the cache to it. All pending
// optimistic state is dropped; the server page is authoritative.
func (c *Client) FetchPosts(ctx context.Context, page, limit int) (*posts.ListPostsResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp posts.ListPostsResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	c.Feed.SetPosts(resp.Posts)
	return &resp, nil
}

// GetPost fetches a single post without touching the cache.
func (c *Client) GetPost(ctx context.Context, postID uuid.UUID) (*posts.PostView, error) {
	var view posts.PostView
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+postID.String(), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// GetUserPosts fetches a page of one author's posts with their profile.
func (c *Client) GetUserPosts(ctx context.Context, userID uuid.UUID, page, limit int) (*posts.UserPostsResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var resp posts.UserPostsResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts/user/"+userID.String()+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePost creates a post and prepends the confirmed view to the
// feed. Creation is not optimistic: the server assigns identity and
// timestamps, so nothing renders until it confirms.
func (c *Client) CreatePost(ctx context.Context, content string) (*posts.PostView, error) {
	var view posts.PostView
	if err := c.do(ctx, http.MethodPost, "/api/posts", map[string]string{"content": content}, &view); err != nil {
		return nil, err
	}
	c.Feed.PrependPost(&view)
	return &view, nil
}

// UpdatePost edits a post's content and replaces the cached view with
// the confirmed aggregate.
func (c *Client) UpdatePost(ctx context.Context, postID uuid.UUID, content string) (*posts.PostView, error) {
	var view posts.PostView
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+postID.String(), map[string]string{"content": content}, &view); err != nil {
		return nil, err
	}
	c.Feed.ReplacePost(postID, &view)
	return &view, nil
}

// DeletePost deletes a post and removes it from the feed on success.
func (c *Client) DeletePost(ctx context.Context, postID uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/posts/"+postID.String(), nil, nil); err != nil {
		return err
	}
	c.Feed.RemovePost(postID)
	return nil
}

// ToggleLike flips the like locally, then asks the server to flip it
// too. On success the cached post is replaced with canonical state; on
// failure the local flip is rolled back and the error returned.
func (c *Client) ToggleLike(ctx context.Context, postID uuid.UUID) (*posts.LikeResponse, error) {
	c.Feed.ApplyLike(postID, c.userID)

	var resp posts.LikeResponse
	if err := c.do(ctx, http.MethodPut, "/api/posts/"+postID.String()+"/like", nil, &resp); err != nil {
		c.Feed.FailLike(postID)
		return nil, err
	}
	c.Feed.ConfirmLike(postID, resp.Post)
	return &resp, nil
}

// AddComment appends an optimistic placeholder, then submits the
// comment. The canonical comment replaces the placeholder in place; a
// rejected add removes it.
func (c *Client) AddComment(ctx context.Context, postID uuid.UUID, content string) (*posts.AddCommentResponse, error) {
	c.Feed.ApplyComment(postID, c.author, content)

	var resp posts.AddCommentResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts/"+postID.String()+"/comments", map[string]string{"content": content}, &resp); err != nil {
		c.Feed.FailComment(postID)
		return nil, err
	}
	c.Feed.ConfirmComment(postID, resp.Comment)
	return &resp, nil
}

// DeleteComment removes a comment. Deletion is confirmed-then-applied:
// the cache changes only after the server echoes the updated aggregate.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID uuid.UUID) (*posts.DeleteCommentResponse, error) {
	var resp posts.DeleteCommentResponse
	if err := c.do(ctx, http.MethodDelete, "/api/posts/"+postID.String()+"/comments/"+commentID.String(), nil, &resp); err != nil {
		return nil, err
	}
	c.Feed.ReplacePost(postID, resp.Post)
	return &resp, nil
}

// do issues one JSON request and decodes the response into out when the
// server reports success. Non-2xx responses decode into *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Type = "Unknown"
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
