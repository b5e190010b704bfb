package events

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

// Fanout delivers each event to every configured publisher (NATS,
// websocket hub) and joins their errors.
type Fanout []posts.EventPublisher

// NewFanout builds a fanout, skipping nil publishers so callers can
// pass optional backends unconditionally.
func NewFanout(publishers ...posts.EventPublisher) Fanout {
	var f Fanout
	for _, p := range publishers {
		if p != nil {
			f = append(f, p)
		}
	}
	return f
}

func (f Fanout) PostCreated(ctx context.Context, post *posts.PostView) error {
	var errs []error
	for _, p := range f {
		errs = append(errs, p.PostCreated(ctx, post))
	}
	return errors.Join(errs...)
}

func (f Fanout) PostLiked(ctx context.Context, postID, userID uuid.UUID, liked bool, likesCount int) error {
	var errs []error
	for _, p := range f {
		errs = append(errs, p.PostLiked(ctx, postID, userID, liked, likesCount))
	}
	return errors.Join(errs...)
}

func (f Fanout) PostCommented(ctx context.Context, postID uuid.UUID, comment *posts.CommentView) error {
	var errs []error
	for _, p := range f {
		errs = append(errs, p.PostCommented(ctx, postID, comment))
	}
	return errors.Join(errs...)
}

func (f Fanout) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	var errs []error
	for _, p := range f {
		errs = append(errs, p.PostDeleted(ctx, postID))
	}
	return errors.Join(errs...)
}
