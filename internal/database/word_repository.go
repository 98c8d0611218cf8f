package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/learnwords/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ErrWordNotFound is returned when a word is absent from the catalog
var ErrWordNotFound = errors.New("word not found")

// WordRepository handles database operations for the shared word catalog
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// Count returns the number of words in the catalog
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// GetAll returns every catalog word ordered by id, without progress
func (r *WordRepository) GetAll(ctx context.Context) ([]models.Word, error) {
	var words []models.Word
	err := r.db.SelectContext(ctx, &words, "SELECT id, text, translation FROM words ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetByOriginal returns a catalog word by its original text
func (r *WordRepository) GetByOriginal(ctx context.Context, original string) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind("SELECT id, text, translation FROM words WHERE text = ?")
	err := r.db.GetContext(ctx, &word, query, original)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by text: %w", err)
	}
	return &word, nil
}

// Import inserts the words in one transaction. Words whose original text
// already exists are left untouched. Returns the number of inserted words.
func (r *WordRepository) Import(ctx context.Context, words []models.Word) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		"INSERT INTO words (text, translation) VALUES (?, ?) ON CONFLICT (text) DO NOTHING",
	))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer stmt.Close()

	created := 0
	for _, word := range words {
		result, err := stmt.ExecContext(ctx, word.Original, word.Translation)
		if err != nil {
			return 0, fmt.Errorf("failed to import word %q: %w", word.Original, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		created += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return created, nil
}
