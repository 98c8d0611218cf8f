package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/example/learnwords/pkg/models"
)

// FileDictionary keeps the catalog and the counters of a single user in one
// file. The file is loaded eagerly and rewritten after every mutation.
// It is not safe for concurrent use.
type FileDictionary struct {
	path      string
	threshold int
	words     []models.Word
}

// OpenFile loads the dictionary stored at path. If the file does not exist and
// seedPath is set, the seed catalog is copied to path first.
func OpenFile(path, seedPath string, threshold int) (*FileDictionary, error) {
	if threshold < 1 {
		threshold = DefaultLearningThreshold
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && seedPath != "" {
		if err := copyFile(seedPath, path); err != nil {
			return nil, fmt.Errorf("failed to seed dictionary: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	words, err := ParseCatalog(f)
	if err != nil {
		return nil, err
	}

	return &FileDictionary{path: path, threshold: threshold, words: words}, nil
}

func (d *FileDictionary) Kind() Kind { return KindFile }

func (d *FileDictionary) DictionarySize(ctx context.Context) (int, error) {
	return len(d.words), nil
}

func (d *FileDictionary) NumLearnedWords(ctx context.Context) (int, error) {
	learned, _ := d.LearnedWords(ctx)
	return len(learned), nil
}

func (d *FileDictionary) LearnedWords(ctx context.Context) ([]models.Word, error) {
	return d.filter(true), nil
}

func (d *FileDictionary) UnlearnedWords(ctx context.Context) ([]models.Word, error) {
	return d.filter(false), nil
}

// filter returns copies so callers can't mutate the stored counters
func (d *FileDictionary) filter(learned bool) []models.Word {
	words := make([]models.Word, 0, len(d.words))
	for _, w := range d.words {
		if w.IsLearned(d.threshold) == learned {
			words = append(words, w)
		}
	}
	return words
}

func (d *FileDictionary) RecordAnswer(ctx context.Context, word models.Word, count int, at time.Time) error {
	for i := range d.words {
		if d.words[i].Original == word.Original {
			d.words[i].CorrectAnswersCount = count
			return d.save()
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, word.Original)
}

func (d *FileDictionary) ResetProgress(ctx context.Context, at time.Time) error {
	for i := range d.words {
		d.words[i].CorrectAnswersCount = 0
	}
	return d.save()
}

// save writes a temporary file next to the dictionary and renames it over the old one
func (d *FileDictionary) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary dictionary: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCatalog(tmp, d.words); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync dictionary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close dictionary: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("failed to replace dictionary: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
