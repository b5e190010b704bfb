package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"Lumen/internal/core/posts"
)

// NATS subjects for post lifecycle events.
const (
	SubjectPostCreated   = "post.created"
	SubjectPostLiked     = "post.liked"
	SubjectPostCommented = "post.commented"
	SubjectPostDeleted   = "post.deleted"
)

// PostCreatedEvent is the wire shape for post.created.
type PostCreatedEvent struct {
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
	PostID    uuid.UUID `json:"postId"`
	AuthorID  uuid.UUID `json:"authorId"`
}

// PostLikedEvent is the wire shape for post.liked. Liked reports the
// direction of the flip the event describes.
type PostLikedEvent struct {
	PostID     uuid.UUID `json:"postId"`
	UserID     uuid.UUID `json:"userId"`
	Liked      bool      `json:"liked"`
	LikesCount int       `json:"likesCount"`
}

// PostCommentedEvent is the wire shape for post.commented.
type PostCommentedEvent struct {
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `json:"content"`
	PostID    uuid.UUID `json:"postId"`
	CommentID uuid.UUID `json:"commentId"`
	UserID    uuid.UUID `json:"userId"`
}

// PostDeletedEvent is the wire shape for post.deleted.
type PostDeletedEvent struct {
	PostID uuid.UUID `json:"postId"`
}

// NatsPublisher publishes post lifecycle events as JSON NATS messages.
type NatsPublisher struct {
	nc *nats.Conn
}

// NewNatsPublisher creates a NATS-backed event publisher.
func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

func (p *NatsPublisher) PostCreated(_ context.Context, post *posts.PostView) error {
	event := PostCreatedEvent{
		PostID:    post.ID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		event.AuthorID = post.Author.ID
	}
	return p.publish(SubjectPostCreated, event)
}

func (p *NatsPublisher) PostLiked(_ context.Context, postID, userID uuid.UUID, liked bool, likesCount int) error {
	return p.publish(SubjectPostLiked, PostLikedEvent{
		PostID:     postID,
		UserID:     userID,
		Liked:      liked,
		LikesCount: likesCount,
	})
}

func (p *NatsPublisher) PostCommented(_ context.Context, postID uuid.UUID, comment *posts.CommentView) error {
	event := PostCommentedEvent{
		PostID:    postID,
		CommentID: comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		event.UserID = comment.User.ID
	}
	return p.publish(SubjectPostCommented, event)
}

func (p *NatsPublisher) PostDeleted(_ context.Context, postID uuid.UUID) error {
	return p.publish(SubjectPostDeleted, PostDeletedEvent{PostID: postID})
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
