package ws

import (
	"context"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

// Publisher adapts the hub to the posts.EventPublisher port so the
// post service can broadcast without knowing about websockets.
type Publisher struct {
	hub *Hub
}

// NewPublisher wraps a hub as an event publisher.
func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) PostCreated(_ context.Context, post *posts.PostView) error {
	p.hub.Broadcast(Event{Type: "post.created", Payload: post})
	return nil
}

func (p *Publisher) PostLiked(_ context.Context, postID, userID uuid.UUID, liked bool, likesCount int) error {
	p.hub.Broadcast(Event{Type: "post.liked", Payload: map[string]interface{}{
		"postId":     postID,
		"userId":     userID,
		"liked":      liked,
		"likesCount": likesCount,
	}})
	return nil
}

func (p *Publisher) PostCommented(_ context.Context, postID uuid.UUID, comment *posts.CommentView) error {
	p.hub.Broadcast(Event{Type: "post.commented", Payload: map[string]interface{}{
		"postId":  postID,
		"comment": comment,
	}})
	return nil
}

func (p *Publisher) PostDeleted(_ context.Context, postID uuid.UUID) error {
	p.hub.Broadcast(Event{Type: "post.deleted", Payload: map[string]interface{}{
		"postId": postID,
	}})
	return nil
}
