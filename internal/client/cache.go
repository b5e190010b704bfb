package client

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

// Cache mirrors the server's feed on the client and absorbs optimistic
// mutations until the server confirms or rejects them. All methods are
// safe for concurrent use.
type Cache struct {
	mu sync.Mutex

	// Newest first, same order the server returns.
	posts []*posts.PostView

	pendingLikes    map[uuid.UUID]pendingLike
	pendingComments map[uuid.UUID]pendingComment
}

// pendingLike records the direction of an unconfirmed like flip so a
// failure can undo exactly what was applied.
type pendingLike struct {
	UserID uuid.UUID
	Liked  bool
}

// pendingComment records the placeholder ID of an unconfirmed comment.
type pendingComment struct {
	TempID uuid.UUID
}

// NewCache creates an empty feed cache.
func NewCache() *Cache {
	return &Cache{
		pendingLikes:    make(map[uuid.UUID]pendingLike),
		pendingComments: make(map[uuid.UUID]pendingComment),
	}
}

// SetPosts replaces the cached feed with a fresh server page and drops
// all pending tracking. Server state always wins over local optimism.
func (c *Cache) SetPosts(views []*posts.PostView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.posts = make([]*posts.PostView, len(views))
	copy(c.posts, views)
	c.pendingLikes = make(map[uuid.UUID]pendingLike)
	c.pendingComments = make(map[uuid.UUID]pendingComment)
}

// Posts returns a snapshot of the cached feed.
func (c *Cache) Posts() []*posts.PostView {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*posts.PostView, len(c.posts))
	copy(out, c.posts)
	return out
}

// Post returns the cached view for postID, or nil if not cached.
func (c *Cache) Post(postID uuid.UUID) *posts.PostView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.find(postID)
}

// PrependPost inserts a newly confirmed post at the head of the feed.
// Post creation is never optimistic; this is called only with canonical
// server state.
func (c *Cache) PrependPost(view *posts.PostView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.posts = append([]*posts.PostView{view}, c.posts...)
}

// RemovePost drops a post from the feed after a confirmed deletion.
func (c *Cache) RemovePost(postID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.posts {
		if p.ID == postID {
			c.posts = append(c.posts[:i], c.posts[i+1:]...)
			break
		}
	}
	delete(c.pendingLikes, postID)
	delete(c.pendingComments, postID)
}

// ApplyLike flips userID's membership in the post's like set and records
// the direction so FailLike can undo it. Reports the new liked state and
// whether the post was found.
func (c *Cache) ApplyLike(postID, userID uuid.UUID) (liked, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.find(postID)
	if p == nil {
		return false, false
	}

	liked = !p.LikedBy(userID)
	flipLike(p, userID, liked)
	c.pendingLikes[postID] = pendingLike{UserID: userID, Liked: liked}
	return liked, true
}

// ConfirmLike replaces the post with the canonical aggregate returned by
// the server and clears the pending entry.
func (c *Cache) ConfirmLike(postID uuid.UUID, canonical *posts.PostView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.replace(postID, canonical)
	delete(c.pendingLikes, postID)
}

// FailLike undoes the recorded optimistic flip. A missing pending entry
// means a refetch already reset the feed and there is nothing to undo.
func (c *Cache) FailLike(postID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending, ok := c.pendingLikes[postID]
	if !ok {
		return
	}
	delete(c.pendingLikes, postID)

	if p := c.find(postID); p != nil {
		flipLike(p, pending.UserID, !pending.Liked)
	}
}

// ApplyComment appends a placeholder comment with a fresh temporary ID
// and returns it. The placeholder carries the trimmed content and the
// local clock so the feed renders immediately.
func (c *Cache) ApplyComment(postID uuid.UUID, author *posts.AuthorView, content string) (*posts.CommentView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.find(postID)
	if p == nil {
		return nil, false
	}

	temp := posts.CommentView{
		ID:        uuid.New(),
		User:      author,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}
	p.Comments = append(p.Comments, temp)
	c.pendingComments[postID] = pendingComment{TempID: temp.ID}
	return &temp, true
}

// ConfirmComment swaps the placeholder for the canonical comment in
// place, preserving order. If the pending entry was cleared by an
// intervening refetch the canonical comment is appended instead, unless
// the refetch already brought it in.
func (c *Cache) ConfirmComment(postID uuid.UUID, canonical *posts.CommentView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.find(postID)
	if p == nil {
		delete(c.pendingComments, postID)
		return
	}

	pending, ok := c.pendingComments[postID]
	delete(c.pendingComments, postID)

	if ok {
		for i := range p.Comments {
			if p.Comments[i].ID == pending.TempID {
				p.Comments[i] = *canonical
				return
			}
		}
	}
	for i := range p.Comments {
		if p.Comments[i].ID == canonical.ID {
			return
		}
	}
	p.Comments = append(p.Comments, *canonical)
}

// FailComment removes the placeholder comment after a rejected add.
func (c *Cache) FailComment(postID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending, ok := c.pendingComments[postID]
	if !ok {
		return
	}
	delete(c.pendingComments, postID)

	p := c.find(postID)
	if p == nil {
		return
	}
	for i := range p.Comments {
		if p.Comments[i].ID == pending.TempID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return
		}
	}
}

// ReplacePost overwrites the cached view with canonical server state,
// used after confirmed updates and comment deletions.
func (c *Cache) ReplacePost(postID uuid.UUID, canonical *posts.PostView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replace(postID, canonical)
}

// find returns the cached view for postID, or nil. Caller holds mu.
func (c *Cache) find(postID uuid.UUID) *posts.PostView {
	for _, p := range c.posts {
		if p.ID == postID {
			return p
		}
	}
	return nil
}

// replace swaps the cached view for postID with canonical, if present.
// Caller holds mu.
func (c *Cache) replace(postID uuid.UUID, canonical *posts.PostView) {
	for i, p := range c.posts {
		if p.ID == postID {
			c.posts[i] = canonical
			return
		}
	}
}

// flipLike adds or removes userID from the view's like set.
func flipLike(p *posts.PostView, userID uuid.UUID, liked bool) {
	if liked {
		if !p.LikedBy(userID) {
			p.Likes = append(p.Likes, userID)
		}
		return
	}
	kept := p.Likes[:0]
	for _, id := range p.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	p.Likes = kept
}
