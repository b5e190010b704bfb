package users

import (
	"context"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

// directory adapts the user repository to the posts.UserDirectory port,
// exposing only the minimal profile fields post views need.
type directory struct {
	repo UserRepository
}

// NewDirectory creates a posts.UserDirectory backed by the user store.
func NewDirectory(repo UserRepository) posts.UserDirectory {
	return &directory{repo: repo}
}

func (d *directory) GetProfile(ctx context.Context, id uuid.UUID) (*posts.AuthorView, error) {
	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, posts.ErrUserNotFound
		}
		return nil, err
	}
	return profileOf(user), nil
}

func (d *directory) GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*posts.AuthorView, error) {
	userMap, err := d.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles := make(map[uuid.UUID]*posts.AuthorView, len(userMap))
	for id, user := range userMap {
		profiles[id] = profileOf(user)
	}
	return profiles, nil
}

func profileOf(user *User) *posts.AuthorView {
	return &posts.AuthorView{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
}
