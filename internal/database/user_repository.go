package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/learnwords/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ErrUserNotFound is returned when no user has the requested chat id
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles database operations for users
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByChatID returns a user by the external chat id
func (r *UserRepository) GetByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	query := r.db.Rebind("SELECT id, username, created_at, chat_id FROM users WHERE chat_id = ?")
	err := r.db.GetContext(ctx, &user, query, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by chat id: %w", err)
	}
	return &user, nil
}

// Ensure registers the chat id if it is new and returns the stored user.
// An existing user keeps its original display name and creation time.
func (r *UserRepository) Ensure(ctx context.Context, chatID int64, username string, createdAt time.Time) (*models.User, error) {
	name := sql.NullString{String: username, Valid: username != ""}

	query := r.db.Rebind(`
		INSERT INTO users (username, created_at, chat_id)
		VALUES (?, ?, ?)
		ON CONFLICT (chat_id) DO NOTHING
	`)
	if _, err := r.db.ExecContext(ctx, query, name, createdAt.UTC(), chatID); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return r.GetByChatID(ctx, chatID)
}
