package dictionary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/learnwords/internal/database"
	"github.com/example/learnwords/pkg/models"
	"github.com/jmoiron/sqlx"
)

// DatabaseDictionary is the shared catalog seen through one chat user's progress
type DatabaseDictionary struct {
	userID    int64
	threshold int
	words     *database.WordRepository
	progress  *database.UserProgressRepository
}

// OpenDatabase registers the chat user if needed and returns its dictionary.
// firstSeen is stored as the user's creation time on first contact.
func OpenDatabase(ctx context.Context, db *sqlx.DB, chatID int64, username string, firstSeen time.Time, threshold int) (*DatabaseDictionary, error) {
	if threshold < 1 {
		threshold = DefaultLearningThreshold
	}

	user, err := database.NewUserRepository(db).Ensure(ctx, chatID, username, firstSeen)
	if err != nil {
		return nil, err
	}

	return &DatabaseDictionary{
		userID:    user.ID,
		threshold: threshold,
		words:     database.NewWordRepository(db),
		progress:  database.NewUserProgressRepository(db),
	}, nil
}

func (d *DatabaseDictionary) Kind() Kind { return KindDatabase }

func (d *DatabaseDictionary) DictionarySize(ctx context.Context) (int, error) {
	return d.words.Count(ctx)
}

func (d *DatabaseDictionary) NumLearnedWords(ctx context.Context) (int, error) {
	return d.progress.CountLearned(ctx, d.userID, d.threshold)
}

func (d *DatabaseDictionary) LearnedWords(ctx context.Context) ([]models.Word, error) {
	return d.progress.GetLearnedWords(ctx, d.userID, d.threshold)
}

func (d *DatabaseDictionary) UnlearnedWords(ctx context.Context) ([]models.Word, error) {
	return d.progress.GetUnlearnedWords(ctx, d.userID, d.threshold)
}

func (d *DatabaseDictionary) RecordAnswer(ctx context.Context, word models.Word, count int, at time.Time) error {
	err := d.progress.SetCorrectAnswerCount(ctx, d.userID, word.Original, count, at)
	if errors.Is(err, database.ErrWordNotFound) {
		return fmt.Errorf("%w: %q", ErrNotFound, word.Original)
	}
	return err
}

func (d *DatabaseDictionary) ResetProgress(ctx context.Context, at time.Time) error {
	return d.progress.Reset(ctx, d.userID, at)
}
