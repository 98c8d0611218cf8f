package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/learnwords/pkg/models"
	"github.com/jmoiron/sqlx"
)

// UserProgressRepository handles database operations for user progress
type UserProgressRepository struct {
	db *sqlx.DB
}

// NewUserProgressRepository creates a new repository instance
func NewUserProgressRepository(db *sqlx.DB) *UserProgressRepository {
	return &UserProgressRepository{db: db}
}

// wordsWithProgress joins the catalog with one user's counters.
// Words the user never answered have a count of 0.
const wordsWithProgress = `
	SELECT w.id, w.text, w.translation, COALESCE(p.correct_answer_count, 0) AS correct_answer_count
	FROM words w
	LEFT JOIN user_progress p ON p.word_id = w.id AND p.user_id = ?
`

// GetLearnedWords returns words whose count reached the threshold for the user
func (r *UserProgressRepository) GetLearnedWords(ctx context.Context, userID int64, threshold int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(wordsWithProgress + "WHERE COALESCE(p.correct_answer_count, 0) >= ? ORDER BY w.id")
	if err := r.db.SelectContext(ctx, &words, query, userID, threshold); err != nil {
		return nil, fmt.Errorf("failed to get learned words: %w", err)
	}
	return words, nil
}

// GetUnlearnedWords returns words whose count is below the threshold for the user
func (r *UserProgressRepository) GetUnlearnedWords(ctx context.Context, userID int64, threshold int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(wordsWithProgress + "WHERE COALESCE(p.correct_answer_count, 0) < ? ORDER BY w.id")
	if err := r.db.SelectContext(ctx, &words, query, userID, threshold); err != nil {
		return nil, fmt.Errorf("failed to get unlearned words: %w", err)
	}
	return words, nil
}

// CountLearned returns how many words reached the threshold for the user
func (r *UserProgressRepository) CountLearned(ctx context.Context, userID int64, threshold int) (int, error) {
	var count int
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM user_progress p
		JOIN words w ON w.id = p.word_id
		WHERE p.user_id = ? AND p.correct_answer_count >= ?
	`)
	if err := r.db.GetContext(ctx, &count, query, userID, threshold); err != nil {
		return 0, fmt.Errorf("failed to count learned words: %w", err)
	}
	return count, nil
}

// SetCorrectAnswerCount upserts the user's counter for the word identified by
// its original text in a single statement. Returns ErrWordNotFound if the
// catalog has no such word.
func (r *UserProgressRepository) SetCorrectAnswerCount(ctx context.Context, userID int64, original string, count int, at time.Time) error {
	// PostgreSQL can't infer parameter types in a SELECT list
	selectList := "?, id, ?, ?"
	if r.db.DriverName() == DriverPostgres {
		selectList = "CAST(? AS BIGINT), id, CAST(? AS INTEGER), CAST(? AS TIMESTAMP)"
	}

	query := r.db.Rebind(`
		INSERT INTO user_progress (user_id, word_id, correct_answer_count, updated_at)
		SELECT ` + selectList + ` FROM words WHERE text = ?
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			correct_answer_count = excluded.correct_answer_count,
			updated_at = excluded.updated_at
	`)
	result, err := r.db.ExecContext(ctx, query, userID, count, at.UTC(), original)
	if err != nil {
		return fmt.Errorf("failed to save user progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrWordNotFound
	}
	return nil
}

// GetByUser returns all stored counters of the user
func (r *UserProgressRepository) GetByUser(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	var progress []models.UserProgress
	query := r.db.Rebind(`
		SELECT user_id, word_id, correct_answer_count, updated_at
		FROM user_progress WHERE user_id = ? ORDER BY word_id
	`)
	if err := r.db.SelectContext(ctx, &progress, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}
	return progress, nil
}

// Reset sets every counter of the user to zero. The catalog is not touched.
func (r *UserProgressRepository) Reset(ctx context.Context, userID int64, at time.Time) error {
	query := r.db.Rebind("UPDATE user_progress SET correct_answer_count = 0, updated_at = ? WHERE user_id = ?")
	if _, err := r.db.ExecContext(ctx, query, at.UTC(), userID); err != nil {
		return fmt.Errorf("failed to reset user progress: %w", err)
	}
	return nil
}
