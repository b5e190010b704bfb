package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"Lumen/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository.
// Each aggregate is one row; likes and comments live in JSONB columns
// and are written back whole on every mutation, so the row is the
// unit of consistency (last write wins, as the store serializes
// concurrent writes to the same row).
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post aggregate
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	likes, comments, err := marshalAggregate(post)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (id, author_id, content, likes, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		post.ID, post.AuthorID, post.Content, likes, comments, post.CreatedAt, post.UpdatedAt).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post aggregate by its ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*posts.Post, error) {
	query := `
		SELECT id, author_id, content, likes, comments, created_at, updated_at
		FROM posts
		WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.NewNotFoundError("post", id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// Update writes back the whole mutated aggregate and refreshes updated_at
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	likes, comments, err := marshalAggregate(post)
	if err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET content = $2, likes = $3, comments = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query, post.ID, post.Content, likes, comments).
		Scan(&post.UpdatedAt)
	if err == sql.ErrNoRows {
		return posts.NewNotFoundError("post", post.ID.String())
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	return nil
}

// Delete removes the aggregate row; embedded comments go with it
func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return posts.NewNotFoundError("post", id.String())
	}

	return nil
}

// List returns one page ordered newest first plus the total count for
// the same filter
func (r *postgresPostRepo) List(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*posts.Post, int, error) {
	query := `
		SELECT id, author_id, content, likes, comments, created_at, updated_at
		FROM posts
		WHERE ($1::uuid IS NULL OR author_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, authorID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var result []*posts.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	var total int
	countQuery := `SELECT count(*) FROM posts WHERE ($1::uuid IS NULL OR author_id = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return result, total, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row scanner) (*posts.Post, error) {
	post := &posts.Post{}
	var likes, comments []byte

	err := row.Scan(&post.ID, &post.AuthorID, &post.Content,
		&likes, &comments, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(likes, &post.Likes); err != nil {
		return nil, fmt.Errorf("failed to decode likes: %w", err)
	}
	if err := json.Unmarshal(comments, &post.Comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	if post.Likes == nil {
		post.Likes = []uuid.UUID{}
	}
	if post.Comments == nil {
		post.Comments = []posts.Comment{}
	}

	return post, nil
}

func marshalAggregate(post *posts.Post) (likes, comments []byte, err error) {
	likes, err = json.Marshal(post.Likes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode likes: %w", err)
	}
	comments, err = json.Marshal(post.Comments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode comments: %w", err)
	}
	return likes, comments, nil
}
