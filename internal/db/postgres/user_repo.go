package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"Lumen/internal/core/users"
)

const maxBatchSize = 1000

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		// Check for unique constraint violations
		if strings.Contains(err.Error(), "duplicate key") &&
			strings.Contains(err.Error(), "users_email_key") {
			return nil, users.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (r *postgresUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	query := `
		SELECT id, name, email, password_hash, bio, avatar, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by their (normalized) email
func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	query := `
		SELECT id, name, email, password_hash, bio, avatar, created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByIDs retrieves multiple users in a single batch query.
// Missing users are simply absent from the result map.
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*users.User, error) {
	result := make(map[uuid.UUID]*users.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	if len(ids) > maxBatchSize {
		return nil, fmt.Errorf("batch too large: %d ids (max %d)", len(ids), maxBatchSize)
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	query := `
		SELECT id, name, email, password_hash, bio, avatar, created_at, updated_at
		FROM users
		WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(idStrings))
	if err != nil {
		return nil, fmt.Errorf("failed to batch get users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user := &users.User{}
		var bio, avatar sql.NullString
		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&bio, &avatar, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		applyNullables(user, bio, avatar)
		result[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return result, nil
}

// UpdateProfile writes name, email, bio, and avatar
func (r *postgresUserRepo) UpdateProfile(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		UPDATE users
		SET name = $2, email = $3, bio = $4, avatar = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.Bio, user.Avatar).
		Scan(&user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") &&
			strings.Contains(err.Error(), "users_email_key") {
			return nil, users.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}

// UpdatePassword stores a new password hash
func (r *postgresUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return users.ErrUserNotFound
	}

	return nil
}

// Delete removes the account row. The posts.author_id foreign key is
// ON DELETE CASCADE, so the user's posts go in the same statement.
func (r *postgresUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return users.ErrUserNotFound
	}

	return nil
}

func (r *postgresUserRepo) scanUser(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	var bio, avatar sql.NullString

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&bio, &avatar, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	applyNullables(user, bio, avatar)
	return user, nil
}

func applyNullables(user *users.User, bio, avatar sql.NullString) {
	if bio.Valid {
		user.Bio = &bio.String
	}
	if avatar.Valid {
		user.Avatar = &avatar.String
	}
}
