// Package dictionary provides per-user views over the word catalog.
//
// A Dictionary is either file-backed (one file holds the catalog and the
// counters of a single user) or database-backed (a shared catalog with
// per-user progress rows). The variant is chosen when the dictionary is
// constructed.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/learnwords/pkg/models"
)

// DefaultLearningThreshold is the number of correct answers after which a word is learned
const DefaultLearningThreshold = 3

// Kind identifies the storage variant of a Dictionary
type Kind string

const (
	KindFile     Kind = "file"
	KindDatabase Kind = "database"
)

// ErrNotFound is returned when an answer is recorded for a word absent from the catalog
var ErrNotFound = errors.New("word is not in the dictionary")

// MalformedCatalogError reports a catalog file that cannot be loaded
type MalformedCatalogError struct {
	Line   int
	Reason string
}

func (e *MalformedCatalogError) Error() string {
	return fmt.Sprintf("malformed catalog at line %d: %s", e.Line, e.Reason)
}

// Dictionary is the word catalog as seen by one user
type Dictionary interface {
	// Kind reports the storage variant
	Kind() Kind
	// DictionarySize returns the number of words in the catalog
	DictionarySize(ctx context.Context) (int, error)
	// NumLearnedWords returns the number of words learned by the user
	NumLearnedWords(ctx context.Context) (int, error)
	// LearnedWords and UnlearnedWords partition the catalog
	LearnedWords(ctx context.Context) ([]models.Word, error)
	UnlearnedWords(ctx context.Context) ([]models.Word, error)
	// RecordAnswer stores a new correct-answer count for the word, looked up by its original text
	RecordAnswer(ctx context.Context, word models.Word, count int, at time.Time) error
	// ResetProgress sets every counter of the user to zero
	ResetProgress(ctx context.Context, at time.Time) error
}

var (
	_ Dictionary = (*FileDictionary)(nil)
	_ Dictionary = (*DatabaseDictionary)(nil)
)
