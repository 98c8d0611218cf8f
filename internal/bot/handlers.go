package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/example/learnwords/internal/metrics"
	"github.com/example/learnwords/internal/session"
	"github.com/example/learnwords/pkg/models"
)

// Constants for callback data
const (
	callbackLearnWords   = "learning_words_clicked"
	callbackStatistics   = "statistics_clicked"
	callbackReset        = "reset_clicked"
	callbackAnswerPrefix = "answer_"
	callbackBackToMenu   = callbackAnswerPrefix + "0"
)

const (
	mainMenuText     = "Основное меню"
	learnWordsText   = "Изучать слова"
	statisticsText   = "Статистика"
	resetText        = "Сбросить прогресс"
	greetingText     = "Hello! \nSend /start or /menu to switch to main menu"
	unknownText      = "I don't understand you"
	correctText      = "Правильно"
	allLearnedText   = "Вы выучили все слова"
	progressResetMsg = "Прогресс сброшен"
	tryAgainText     = "Произошла ошибка. Пожалуйста, попробуйте ещё раз."
)

// Event kinds used in logs and metrics
const (
	kindCommand    = "command"
	kindGreeting   = "greeting"
	kindStatistics = "statistics"
	kindLearn      = "learn"
	kindReset      = "reset"
	kindAnswer     = "answer"
	kindUnknown    = "unknown"
)

// Notifier renders results back to a chat
type Notifier interface {
	SendText(chatID int64, text string) error
	SendMenu(chatID int64) error
	SendQuestion(chatID int64, question *models.Question) error
}

// Sessions resolves a chat to its live session
type Sessions interface {
	Get(ctx context.Context, chatID int64, username string, eventTime time.Time) (*session.Session, error)
}

// Event is one inbound message or button press
type Event struct {
	ChatID   int64
	Username string
	Time     time.Time
	Text     string // message text, empty for button presses
	Data     string // callback data, empty for messages
}

// Handler maps chat events to trainer operations
type Handler struct {
	sessions Sessions
	notifier Notifier
}

// NewHandler creates a handler dispatching to the given sessions
func NewHandler(sessions Sessions, notifier Notifier) *Handler {
	return &Handler{sessions: sessions, notifier: notifier}
}

// Handle processes one event. Storage failures are reported to the chat as a
// "try again" message and returned.
func (h *Handler) Handle(ctx context.Context, ev Event) error {
	kind := eventKind(ev)

	err := h.dispatch(ctx, kind, ev)
	metrics.RecordEvent(kind, err != nil)
	if err == nil {
		return nil
	}

	log.Printf("Error handling %s event for chat %d: %v", kind, ev.ChatID, err)
	if sendErr := h.notifier.SendText(ev.ChatID, tryAgainText); sendErr != nil {
		log.Printf("Failed to send error message to chat %d: %v", ev.ChatID, sendErr)
	}
	return err
}

func eventKind(ev Event) string {
	text := strings.ToLower(strings.TrimSpace(ev.Text))
	switch {
	case text == "/start" || text == "/menu":
		return kindCommand
	case text == "hello" || text == "hi":
		return kindGreeting
	case ev.Data == callbackStatistics:
		return kindStatistics
	case ev.Data == callbackLearnWords:
		return kindLearn
	case ev.Data == callbackReset:
		return kindReset
	case strings.HasPrefix(ev.Data, callbackAnswerPrefix):
		return kindAnswer
	default:
		return kindUnknown
	}
}

func (h *Handler) dispatch(ctx context.Context, kind string, ev Event) error {
	s, err := h.sessions.Get(ctx, ev.ChatID, ev.Username, ev.Time)
	if err != nil {
		return err
	}
	s.Trainer.UpdateTimestamp(ev.Time)

	switch kind {
	case kindCommand:
		return h.notifier.SendMenu(ev.ChatID)
	case kindGreeting:
		return h.notifier.SendText(ev.ChatID, greetingText)
	case kindStatistics:
		return h.handleStatistics(ctx, s)
	case kindLearn:
		return h.sendNextQuestion(ctx, s)
	case kindReset:
		return h.handleReset(ctx, s)
	case kindAnswer:
		return h.handleAnswer(ctx, s, strings.TrimPrefix(ev.Data, callbackAnswerPrefix))
	default:
		return h.notifier.SendText(ev.ChatID, unknownText)
	}
}

func (h *Handler) handleStatistics(ctx context.Context, s *session.Session) error {
	stats, err := s.Trainer.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to get statistics: %w", err)
	}
	return h.notifier.SendText(s.ChatID, formatStatistics(stats))
}

func (h *Handler) handleReset(ctx context.Context, s *session.Session) error {
	s.LastQuestion = nil
	if err := s.Trainer.ResetProgress(ctx); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	if err := h.notifier.SendText(s.ChatID, progressResetMsg); err != nil {
		return err
	}
	return h.notifier.SendMenu(s.ChatID)
}

// handleAnswer grades the answer to the last question and sends the next one.
// Option 0 leaves the quiz. An answer without a pending question is dropped,
// which covers duplicate deliveries of the same button press.
func (h *Handler) handleAnswer(ctx context.Context, s *session.Session, option string) error {
	if option == "0" {
		s.LastQuestion = nil
		return h.notifier.SendMenu(s.ChatID)
	}

	question := s.LastQuestion
	if question == nil {
		return nil
	}

	correct, err := s.Trainer.CheckAnswer(ctx, option)
	if err != nil {
		return fmt.Errorf("failed to check answer: %w", err)
	}
	s.LastQuestion = nil
	metrics.RecordAnswer(correct)

	result := correctText
	if !correct {
		result = fmt.Sprintf("Неправильно: \n%s - %s", question.RightAnswer.Original, question.RightAnswer.Translation)
	}
	if err := h.notifier.SendText(s.ChatID, result); err != nil {
		return err
	}

	return h.sendNextQuestion(ctx, s)
}

func (h *Handler) sendNextQuestion(ctx context.Context, s *session.Session) error {
	question, err := s.Trainer.NextQuestion(ctx)
	if err != nil {
		s.LastQuestion = nil
		return fmt.Errorf("failed to get next question: %w", err)
	}
	s.LastQuestion = question

	if question == nil {
		return h.notifier.SendText(s.ChatID, allLearnedText)
	}
	metrics.RecordQuestion()
	return h.notifier.SendQuestion(s.ChatID, question)
}

func formatStatistics(stats models.Statistics) string {
	return fmt.Sprintf("Выучено %d из %d слов | %d%%", stats.LearnedWords, stats.TotalWords, stats.LearnedPercent)
}
