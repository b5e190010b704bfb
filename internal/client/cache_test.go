package client

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lumen/internal/core/posts"
)

func feedPost(content string) *posts.PostView {
	now := time.Now().UTC()
	return &posts.PostView{
		ID:        uuid.New(),
		Content:   content,
		Likes:     []uuid.UUID{},
		Comments:  []posts.CommentView{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestSetPosts_ClearsPending tests a refetch drops optimistic tracking
func TestSetPosts_ClearsPending(t *testing.T) {
	cache := NewCache()
	p := feedPost("one")
	cache.SetPosts([]*posts.PostView{p})

	userID := uuid.New()
	_, ok := cache.ApplyLike(p.ID, userID)
	require.True(t, ok)

	// Refetch: server state replaces everything
	fresh := feedPost("one-from-server")
	fresh.ID = p.ID
	cache.SetPosts([]*posts.PostView{fresh})

	// FailLike after the refetch must not touch the fresh post
	cache.FailLike(p.ID)
	assert.False(t, cache.Post(p.ID).LikedBy(userID))
	assert.Equal(t, "one-from-server", cache.Post(p.ID).Content)
}

// TestApplyLike_FlipAndRollback tests the optimistic like round trip
func TestApplyLike_FlipAndRollback(t *testing.T) {
	cache := NewCache()
	p := feedPost("post")
	cache.SetPosts([]*posts.PostView{p})

	userID := uuid.New()

	liked, ok := cache.ApplyLike(p.ID, userID)
	require.True(t, ok)
	assert.True(t, liked)
	assert.True(t, cache.Post(p.ID).LikedBy(userID))

	cache.FailLike(p.ID)
	assert.False(t, cache.Post(p.ID).LikedBy(userID))

	// Second failure is a no-op; the pending entry is gone
	cache.FailLike(p.ID)
	assert.False(t, cache.Post(p.ID).LikedBy(userID))
}

// TestApplyLike_UnlikeRollback tests rollback restores a removed like
func TestApplyLike_UnlikeRollback(t *testing.T) {
	cache := NewCache()
	userID := uuid.New()
	p := feedPost("post")
	p.Likes = []uuid.UUID{userID}
	cache.SetPosts([]*posts.PostView{p})

	liked, ok := cache.ApplyLike(p.ID, userID)
	require.True(t, ok)
	assert.False(t, liked)
	assert.False(t, cache.Post(p.ID).LikedBy(userID))

	cache.FailLike(p.ID)
	assert.True(t, cache.Post(p.ID).LikedBy(userID))
}

// TestConfirmLike_CanonicalWins tests server state replaces the view
func TestConfirmLike_CanonicalWins(t *testing.T) {
	cache := NewCache()
	p := feedPost("post")
	cache.SetPosts([]*posts.PostView{p})

	userID := uuid.New()
	otherID := uuid.New()
	_, ok := cache.ApplyLike(p.ID, userID)
	require.True(t, ok)

	// Canonical state includes a like from someone else too
	canonical := feedPost("post")
	canonical.ID = p.ID
	canonical.Likes = []uuid.UUID{otherID, userID}
	cache.ConfirmLike(p.ID, canonical)

	got := cache.Post(p.ID)
	assert.Equal(t, 2, got.LikesCount())

	// Pending entry is cleared; a late failure must not re-flip
	cache.FailLike(p.ID)
	assert.Equal(t, 2, cache.Post(p.ID).LikesCount())
}

// TestApplyComment_PlaceholderReplaced tests in-place reconciliation
func TestApplyComment_PlaceholderReplaced(t *testing.T) {
	cache := NewCache()
	p := feedPost("post")
	existing := posts.CommentView{ID: uuid.New(), Content: "earlier", CreatedAt: time.Now().UTC()}
	p.Comments = []posts.CommentView{existing}
	cache.SetPosts([]*posts.PostView{p})

	author := &posts.AuthorView{ID: uuid.New(), Name: "bob"}
	temp, ok := cache.ApplyComment(p.ID, author, "  hot take  ")
	require.True(t, ok)
	assert.Equal(t, "hot take", temp.Content)
	assert.Len(t, cache.Post(p.ID).Comments, 2)

	canonical := &posts.CommentView{ID: uuid.New(), User: author, Content: "hot take", CreatedAt: time.Now().UTC()}
	cache.ConfirmComment(p.ID, canonical)

	got := cache.Post(p.ID).Comments
	require.Len(t, got, 2)
	assert.Equal(t, existing.ID, got[0].ID)
	assert.Equal(t, canonical.ID, got[1].ID, "placeholder replaced in place")
}

// TestFailComment_RemovesPlaceholder tests a rejected add disappears
func TestFailComment_RemovesPlaceholder(t *testing.T) {
	cache := NewCache()
	p := feedPost("post")
	cache.SetPosts([]*posts.PostView{p})

	_, ok := cache.ApplyComment(p.ID, nil, "doomed")
	require.True(t, ok)
	require.Len(t, cache.Post(p.ID).Comments, 1)

	cache.FailComment(p.ID)
	assert.Empty(t, cache.Post(p.ID).Comments)
}

// TestConfirmComment_AfterRefetch tests confirmation survives a refetch
func TestConfirmComment_AfterRefetch(t *testing.T) {
	cache := NewCache()
	p := feedPost("post")
	cache.SetPosts([]*posts.PostView{p})

	_, ok := cache.ApplyComment(p.ID, nil, "slow comment")
	require.True(t, ok)

	// Refetch lands before the confirmation and clears pending state.
	// The refetched page does not include the in-flight comment yet.
	fresh := feedPost("post")
	fresh.ID = p.ID
	cache.SetPosts([]*posts.PostView{fresh})

	canonical := &posts.CommentView{ID: uuid.New(), Content: "slow comment", CreatedAt: time.Now().UTC()}
	cache.ConfirmComment(p.ID, canonical)

	got := cache.Post(p.ID).Comments
	require.Len(t, got, 1)
	assert.Equal(t, canonical.ID, got[0].ID, "appended when no placeholder remains")

	// A second confirmation of the same comment must not duplicate it
	cache.ConfirmComment(p.ID, canonical)
	assert.Len(t, cache.Post(p.ID).Comments, 1)
}

// TestPrependPost tests confirmed creations land at the head
func TestPrependPost(t *testing.T) {
	cache := NewCache()
	older := feedPost("older")
	cache.SetPosts([]*posts.PostView{older})

	newest := feedPost("newest")
	cache.PrependPost(newest)

	feed := cache.Posts()
	require.Len(t, feed, 2)
	assert.Equal(t, newest.ID, feed[0].ID)
	assert.Equal(t, older.ID, feed[1].ID)
}

// TestRemovePost tests deletion drops the post and its pending state
func TestRemovePost(t *testing.T) {
	cache := NewCache()
	p := feedPost("post")
	keep := feedPost("keep")
	cache.SetPosts([]*posts.PostView{p, keep})

	_, ok := cache.ApplyLike(p.ID, uuid.New())
	require.True(t, ok)

	cache.RemovePost(p.ID)

	feed := cache.Posts()
	require.Len(t, feed, 1)
	assert.Equal(t, keep.ID, feed[0].ID)
	assert.Nil(t, cache.Post(p.ID))
}

// TestApplyLike_UnknownPost tests mutations on uncached posts are refused
func TestApplyLike_UnknownPost(t *testing.T) {
	cache := NewCache()

	_, ok := cache.ApplyLike(uuid.New(), uuid.New())
	assert.False(t, ok)

	_, ok = cache.ApplyComment(uuid.New(), nil, "nope")
	assert.False(t, ok)
}
