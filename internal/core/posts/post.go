package posts

import (
	"time"

	"github.com/google/uuid"
)

// Content length limits enforced on every write path.
const (
	MaxPostContentLength    = 1000
	MaxCommentContentLength = 500
)

// Pagination bounds for list endpoints.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Post is the aggregate root: a text post together with its like set
// and its embedded comments. Comments have no lifecycle outside the
// owning post; deleting the post removes them with it.
type Post struct {
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Content   string      `json:"content"`
	Likes     []uuid.UUID `json:"likes"`
	Comments  []Comment   `json:"comments"`
	ID        uuid.UUID   `json:"id"`
	AuthorID  uuid.UUID   `json:"authorId"`
}

// Comment is owned by exactly one post. There is no edit operation;
// a comment is created once and only ever removed.
type Comment struct {
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// AuthorView is the minimal profile attached to posts and comments.
// The aggregate stores only user IDs; views are decorated from the
// user directory at read time.
type AuthorView struct {
	Avatar *string   `json:"avatar,omitempty"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	ID     uuid.UUID `json:"id"`
}

// CommentView is a comment with its author reference resolved.
type CommentView struct {
	CreatedAt time.Time   `json:"createdAt"`
	User      *AuthorView `json:"user,omitempty"`
	Content   string      `json:"content"`
	ID        uuid.UUID   `json:"id"`
}

// PostView is the full aggregate view returned by every read and by
// mutating operations that echo canonical state back to the client.
type PostView struct {
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Author    *AuthorView   `json:"author,omitempty"`
	Content   string        `json:"content"`
	Likes     []uuid.UUID   `json:"likes"`
	Comments  []CommentView `json:"comments"`
	ID        uuid.UUID     `json:"id"`
}

// LikesCount returns the size of the like set.
func (v *PostView) LikesCount() int { return len(v.Likes) }

// LikedBy reports whether userID is in the view's like set.
func (v *PostView) LikedBy(userID uuid.UUID) bool {
	for _, id := range v.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Pagination carries page metadata on list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListPostsRequest selects a page of the feed, optionally filtered to
// a single author.
type ListPostsRequest struct {
	AuthorID *uuid.UUID
	Page     int
	Limit    int
}

// ListPostsResponse is the canonical list envelope.
type ListPostsResponse struct {
	Posts      []*PostView `json:"posts"`
	Pagination Pagination  `json:"pagination"`
}

// UserPostsResponse is the list envelope for a single author's posts,
// carrying that author's minimal profile alongside the page.
type UserPostsResponse struct {
	User       *AuthorView `json:"user"`
	Posts      []*PostView `json:"posts"`
	Pagination Pagination  `json:"pagination"`
}

// LikeResponse echoes the refreshed aggregate plus the flip outcome.
type LikeResponse struct {
	Post       *PostView `json:"post"`
	Liked      bool      `json:"liked"`
	LikesCount int       `json:"likesCount"`
}

// AddCommentResponse carries the canonical comment the client uses to
// replace its optimistic placeholder.
type AddCommentResponse struct {
	Comment       *CommentView `json:"comment"`
	CommentsCount int          `json:"commentsCount"`
}

// DeleteCommentResponse echoes the refreshed aggregate after removal.
type DeleteCommentResponse struct {
	Post          *PostView `json:"post"`
	CommentsCount int       `json:"commentsCount"`
}
