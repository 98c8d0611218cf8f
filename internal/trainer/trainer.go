package trainer

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/example/learnwords/internal/dictionary"
	"github.com/example/learnwords/pkg/models"
)

// DefaultNumOfAnswerOptions is the number of options offered per question
const DefaultNumOfAnswerOptions = 4

// Trainer issues one question at a time to a single user and grades the answer
type Trainer struct {
	dictionary         dictionary.Dictionary
	numOfAnswerOptions int
	rnd                *rand.Rand

	question      *models.Question
	lastEventTime time.Time
}

// Option configures a Trainer
type Option func(*Trainer)

// WithNumOfAnswerOptions sets how many options a question offers
func WithNumOfAnswerOptions(n int) Option {
	return func(t *Trainer) {
		if n > 0 {
			t.numOfAnswerOptions = n
		}
	}
}

// WithRand sets the random source used to build questions
func WithRand(rnd *rand.Rand) Option {
	return func(t *Trainer) {
		t.rnd = rnd
	}
}

// New creates a trainer over the dictionary
func New(dict dictionary.Dictionary, opts ...Option) *Trainer {
	t := &Trainer{
		dictionary:         dict,
		numOfAnswerOptions: DefaultNumOfAnswerOptions,
		lastEventTime:      time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rnd == nil {
		t.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return t
}

// UpdateTimestamp records the time of the latest external event.
// Following mutations are stamped with it.
func (t *Trainer) UpdateTimestamp(at time.Time) {
	t.lastEventTime = at
}

// LastEventTime returns the timestamp used for the next mutation
func (t *Trainer) LastEventTime() time.Time {
	return t.lastEventTime
}

// CurrentQuestion returns the question waiting for an answer, or nil
func (t *Trainer) CurrentQuestion() *models.Question {
	return t.question
}

// Statistics returns the user's progress. An empty dictionary yields zeros.
func (t *Trainer) Statistics(ctx context.Context) (models.Statistics, error) {
	total, err := t.dictionary.DictionarySize(ctx)
	if err != nil {
		return models.Statistics{}, err
	}
	learned, err := t.dictionary.NumLearnedWords(ctx)
	if err != nil {
		return models.Statistics{}, err
	}
	return models.NewStatistics(total, learned), nil
}

// NextQuestion builds a new question from the unlearned words.
// It returns nil when every word is learned.
func (t *Trainer) NextQuestion(ctx context.Context) (*models.Question, error) {
	t.question = nil

	unlearned, err := t.dictionary.UnlearnedWords(ctx)
	if err != nil {
		return nil, err
	}
	if len(unlearned) == 0 {
		return nil, nil
	}

	var question models.Question
	if len(unlearned) >= t.numOfAnswerOptions {
		question.Options = t.sample(unlearned, t.numOfAnswerOptions)
		question.RightAnswer = question.Options[t.rnd.Intn(len(question.Options))]
	} else {
		learned, err := t.dictionary.LearnedWords(ctx)
		if err != nil {
			return nil, err
		}

		padding := t.sample(learned, t.numOfAnswerOptions-len(unlearned))
		options := make([]models.Word, 0, len(unlearned)+len(padding))
		options = append(options, unlearned...)
		options = append(options, padding...)
		t.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		question.Options = options
		// Always ask for an unlearned word
		question.RightAnswer = unlearned[t.rnd.Intn(len(unlearned))]
	}

	t.question = &question
	return t.question, nil
}

// CheckAnswer grades a 1-based option number against the current question.
// A correct answer increments the word's counter. The question is consumed by
// the call, so repeating the answer returns false. Input that is not a valid
// option number, or a call without a question, returns false.
func (t *Trainer) CheckAnswer(ctx context.Context, userAnswer string) (bool, error) {
	question := t.question
	if question == nil {
		return false, nil
	}

	answer, err := strconv.Atoi(strings.TrimSpace(userAnswer))
	if err != nil || answer != question.RightAnswerPosition() {
		t.question = nil
		return false, nil
	}

	word := question.RightAnswer
	if err := t.dictionary.RecordAnswer(ctx, word, word.CorrectAnswersCount+1, t.lastEventTime); err != nil {
		return false, fmt.Errorf("failed to record answer: %w", err)
	}

	t.question = nil
	return true, nil
}

// ResetProgress clears the user's counters and drops the current question
func (t *Trainer) ResetProgress(ctx context.Context) error {
	t.question = nil
	return t.dictionary.ResetProgress(ctx, t.lastEventTime)
}

// sample draws up to n distinct words without replacement
func (t *Trainer) sample(words []models.Word, n int) []models.Word {
	if n > len(words) {
		n = len(words)
	}
	picked := make([]models.Word, 0, n)
	for _, i := range t.rnd.Perm(len(words))[:n] {
		picked = append(picked, words[i])
	}
	return picked
}
