package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type postService struct {
	repo      Repository
	users     UserDirectory
	events    EventPublisher
	feedCache FeedCache
	logger    *slog.Logger
}

// NewPostService creates a new post service. events and feedCache are
// optional; pass nil to run with Postgres alone.
func NewPostService(
	repo Repository,
	users UserDirectory,
	events EventPublisher,
	feedCache FeedCache,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:      repo,
		users:     users,
		events:    events,
		feedCache: feedCache,
		logger:    logger,
	}
}

// ListPosts returns a page of posts ordered newest first.
// The unfiltered first page at the default limit is served from the
// feed cache when available.
func (s *postService) ListPosts(ctx context.Context, req ListPostsRequest) (*ListPostsResponse, error) {
	page, limit, err := normalizePagination(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	cacheable := s.feedCache != nil && req.AuthorID == nil && page == 1 && limit == DefaultPageLimit
	if cacheable {
		if feed, ok := s.feedCache.GetRecent(ctx); ok {
			return feed, nil
		}
	}

	postList, total, err := s.repo.List(ctx, req.AuthorID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	views, err := s.buildViews(ctx, postList)
	if err != nil {
		return nil, err
	}

	feed := &ListPostsResponse{
		Posts:      views,
		Pagination: buildPagination(page, limit, total),
	}

	if cacheable {
		s.feedCache.SetRecent(ctx, feed)
	}

	return feed, nil
}

// GetPost returns the full aggregate view for one post.
func (s *postService) GetPost(ctx context.Context, postID string) (*PostView, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.buildView(ctx, post)
}

// CreatePost persists a new post with empty likes and comments.
func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*PostView, error) {
	content, err := validateContent(content, MaxPostContentLength, "content")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		Likes:     []uuid.UUID{},
		Comments:  []Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	view, err := s.buildView(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	if s.events != nil {
		if err := s.events.PostCreated(ctx, view); err != nil {
			s.logger.Warn("failed to publish post.created", "post", post.ID, "error", err)
		}
	}

	return view, nil
}

// UpdatePost replaces a post's content. Author only.
func (s *postService) UpdatePost(ctx context.Context, callerID uuid.UUID, postID, content string) (*PostView, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	content, err = validateContent(content, MaxPostContentLength, "content")
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, ErrNotPostAuthor
	}

	post.Content = content
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.invalidateFeed(ctx)

	return s.buildView(ctx, post)
}

// DeletePost removes the aggregate, its comments cascading implicitly.
func (s *postService) DeletePost(ctx context.Context, callerID uuid.UUID, postID string) error {
	id, err := parsePostID(postID)
	if err != nil {
		return err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != callerID {
		return ErrNotPostAuthor
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.invalidateFeed(ctx)
	if s.events != nil {
		if err := s.events.PostDeleted(ctx, id); err != nil {
			s.logger.Warn("failed to publish post.deleted", "post", id, "error", err)
		}
	}

	return nil
}

// ToggleLike flips the caller's membership in the like set.
// Each call reads current membership and flips it; there is no
// concurrency token, so racing toggles resolve last-write-wins at the
// store.
func (s *postService) ToggleLike(ctx context.Context, callerID uuid.UUID, postID string) (*LikeResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	liked := !post.LikedBy(callerID)
	if liked {
		post.Likes = append(post.Likes, callerID)
	} else {
		kept := post.Likes[:0]
		for _, uid := range post.Likes {
			if uid != callerID {
				kept = append(kept, uid)
			}
		}
		post.Likes = kept
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update likes: %w", err)
	}

	view, err := s.buildView(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	if s.events != nil {
		if err := s.events.PostLiked(ctx, id, callerID, liked, len(post.Likes)); err != nil {
			s.logger.Warn("failed to publish post.liked", "post", id, "error", err)
		}
	}

	return &LikeResponse{
		Post:       view,
		Liked:      liked,
		LikesCount: len(post.Likes),
	}, nil
}

// AddComment appends a comment with a server-assigned ID.
func (s *postService) AddComment(ctx context.Context, callerID uuid.UUID, postID, content string) (*AddCommentResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	content, err = validateContent(content, MaxCommentContentLength, "content")
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment := Comment{
		ID:        uuid.New(),
		UserID:    callerID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	post.Comments = append(post.Comments, comment)

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	commentView, err := s.buildCommentView(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	if s.events != nil {
		if err := s.events.PostCommented(ctx, id, commentView); err != nil {
			s.logger.Warn("failed to publish post.commented", "post", id, "error", err)
		}
	}

	return &AddCommentResponse{
		Comment:       commentView,
		CommentsCount: len(post.Comments),
	}, nil
}

// DeleteComment removes one comment, preserving the order of the rest.
func (s *postService) DeleteComment(ctx context.Context, callerID uuid.UUID, postID, commentID string) (*DeleteCommentResponse, error) {
	id, err := parsePostID(postID)
	if err != nil {
		return nil, err
	}

	cid, err := uuid.Parse(commentID)
	if err != nil {
		return nil, NewValidationError("commentId", "invalid comment ID")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range post.Comments {
		if c.ID == cid {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NewNotFoundError("comment", commentID)
	}

	// Dual-ownership rule: the comment's author or the post's author
	if post.Comments[idx].UserID != callerID && post.AuthorID != callerID {
		return nil, ErrNotCommentOwner
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	view, err := s.buildView(ctx, post)
	if err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)

	return &DeleteCommentResponse{
		Post:          view,
		CommentsCount: len(post.Comments),
	}, nil
}

// GetUserPosts returns a page of one author's posts plus their profile.
func (s *postService) GetUserPosts(ctx context.Context, userID string, page, limit int) (*UserPostsResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, NewValidationError("userId", "invalid user ID")
	}

	page, limit, err = normalizePagination(page, limit)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetProfile(ctx, uid)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, NewNotFoundError("user", userID)
		}
		return nil, fmt.Errorf("failed to resolve author: %w", err)
	}

	postList, total, err := s.repo.List(ctx, &uid, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}

	views, err := s.buildViews(ctx, postList)
	if err != nil {
		return nil, err
	}

	return &UserPostsResponse{
		User:       author,
		Posts:      views,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

// View construction

// buildViews decorates a page of aggregates with author profiles in a
// single batch lookup.
func (s *postService) buildViews(ctx context.Context, postList []*Post) ([]*PostView, error) {
	ids := make([]uuid.UUID, 0, len(postList))
	seen := make(map[uuid.UUID]struct{})
	collect := func(id uuid.UUID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, p := range postList {
		collect(p.AuthorID)
		for _, c := range p.Comments {
			collect(c.UserID)
		}
	}

	profiles, err := s.users.GetProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profiles: %w", err)
	}

	views := make([]*PostView, len(postList))
	for i, p := range postList {
		views[i] = assembleView(p, profiles)
	}
	return views, nil
}

func (s *postService) buildView(ctx context.Context, post *Post) (*PostView, error) {
	views, err := s.buildViews(ctx, []*Post{post})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *postService) buildCommentView(ctx context.Context, comment Comment) (*CommentView, error) {
	profiles, err := s.users.GetProfiles(ctx, []uuid.UUID{comment.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commenter: %w", err)
	}
	view := commentView(comment, profiles)
	return &view, nil
}

func assembleView(post *Post, profiles map[uuid.UUID]*AuthorView) *PostView {
	comments := make([]CommentView, len(post.Comments))
	for i, c := range post.Comments {
		comments[i] = commentView(c, profiles)
	}
	likes := make([]uuid.UUID, len(post.Likes))
	copy(likes, post.Likes)

	return &PostView{
		ID:        post.ID,
		Content:   post.Content,
		Author:    profiles[post.AuthorID],
		Likes:     likes,
		Comments:  comments,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func commentView(c Comment, profiles map[uuid.UUID]*AuthorView) CommentView {
	return CommentView{
		ID:        c.ID,
		User:      profiles[c.UserID],
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// Helpers

func (s *postService) invalidateFeed(ctx context.Context) {
	if s.feedCache != nil {
		s.feedCache.Invalidate(ctx)
	}
}

// parsePostID distinguishes malformed IDs (client input error) from
// well-formed IDs that match nothing (NotFound, raised later).
func parsePostID(postID string) (uuid.UUID, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return uuid.Nil, NewValidationError("id", "invalid post ID")
	}
	return id, nil
}

// validateContent trims and bounds-checks user-supplied text. Limits
// count characters, not bytes.
func validateContent(content string, max int, field string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", NewValidationError(field, "content is required")
	}
	if utf8.RuneCountInString(content) > max {
		return "", NewValidationError(field, fmt.Sprintf("content must be at most %d characters", max))
	}
	return content, nil
}

// normalizePagination applies defaults and enforces uniform bounds.
func normalizePagination(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if page < 1 {
		return 0, 0, NewValidationError("page", "page must be greater than 0")
	}
	if limit < 1 || limit > MaxPageLimit {
		return 0, 0, NewValidationError("limit", fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit))
	}
	return page, limit, nil
}

func buildPagination(page, limit, total int) Pagination {
	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}
