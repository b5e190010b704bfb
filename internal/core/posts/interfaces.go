package posts

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for the Post aggregate.
// It is the sole writer of persistent post state: every invariant
// (content limits, like-set uniqueness, ownership rules) is enforced
// here before the repository is touched.
//
// Post and comment identifiers cross this boundary as raw strings so
// the service can distinguish malformed IDs (ValidationError) from
// well-formed IDs that match nothing (NotFoundError).
type Service interface {
	// ListPosts returns a page of posts ordered newest first.
	ListPosts(ctx context.Context, req ListPostsRequest) (*ListPostsResponse, error)

	// GetPost returns the full aggregate view for one post.
	GetPost(ctx context.Context, postID string) (*PostView, error)

	// CreatePost persists a new post with empty likes and comments.
	CreatePost(ctx context.Context, authorID uuid.UUID, content string) (*PostView, error)

	// UpdatePost replaces a post's content. Author only.
	UpdatePost(ctx context.Context, callerID uuid.UUID, postID, content string) (*PostView, error)

	// DeletePost removes the aggregate and its embedded comments. Author only.
	DeletePost(ctx context.Context, callerID uuid.UUID, postID string) error

	// ToggleLike flips the caller's membership in the like set.
	// This is a flip, not a set-to-value: the outcome depends on the
	// membership observed by this call.
	ToggleLike(ctx context.Context, callerID uuid.UUID, postID string) (*LikeResponse, error)

	// AddComment appends a comment with a server-assigned ID.
	AddComment(ctx context.Context, callerID uuid.UUID, postID, content string) (*AddCommentResponse, error)

	// DeleteComment removes one comment, preserving the order of the
	// rest. Allowed for the comment author or the post author.
	DeleteComment(ctx context.Context, callerID uuid.UUID, postID, commentID string) (*DeleteCommentResponse, error)

	// GetUserPosts returns a page of one author's posts plus their
	// minimal profile. NotFound if the author does not exist.
	GetUserPosts(ctx context.Context, userID string, page, limit int) (*UserPostsResponse, error)
}

// Repository defines the data access interface for post aggregates.
// Implementations persist each aggregate as one document; Update
// writes back the whole mutated aggregate (last write wins, no
// application-level version token).
type Repository interface {
	Create(ctx context.Context, post *Post) error

	// GetByID returns the aggregate or a NotFoundError.
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// Update writes content, likes, comments and refreshes updated_at.
	Update(ctx context.Context, post *Post) error

	// Delete removes the aggregate row. NotFoundError if missing.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page ordered by created_at descending plus the
	// total count for the same filter.
	List(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*Post, int, error)
}

// UserDirectory supplies minimal author profiles for decorating views.
// The aggregate stores only user IDs; profile data is never
// denormalized into post rows.
type UserDirectory interface {
	// GetProfile returns one profile, or ErrUserNotFound.
	GetProfile(ctx context.Context, id uuid.UUID) (*AuthorView, error)

	// GetProfiles batch-resolves profiles. Missing users are simply
	// absent from the result map.
	GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*AuthorView, error)
}

// EventPublisher receives post lifecycle notifications after the store
// write succeeds. Publish failures are logged by the service, never
// surfaced to the caller.
type EventPublisher interface {
	PostCreated(ctx context.Context, post *PostView) error
	PostLiked(ctx context.Context, postID, userID uuid.UUID, liked bool, likesCount int) error
	PostCommented(ctx context.Context, postID uuid.UUID, comment *CommentView) error
	PostDeleted(ctx context.Context, postID uuid.UUID) error
}

// FeedCache caches the default first page of the feed. Every write to
// any aggregate invalidates it.
type FeedCache interface {
	GetRecent(ctx context.Context) (*ListPostsResponse, bool)
	SetRecent(ctx context.Context, feed *ListPostsResponse)
	Invalidate(ctx context.Context)
}
