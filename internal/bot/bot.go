package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/learnwords/pkg/models"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// MainMenuButtons returns the buttons for the main menu
func MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: learnWordsText, CallbackData: callbackLearnWords},
			{Text: statisticsText, CallbackData: callbackStatistics},
		},
		{
			{Text: resetText, CallbackData: callbackReset},
		},
	}
}

// QuestionButtons returns one button per option, numbered from 1, and a way back to the menu
func QuestionButtons(question *models.Question) [][]MenuButton {
	buttons := make([][]MenuButton, 0, len(question.Options)+1)
	for i, option := range question.Options {
		buttons = append(buttons, []MenuButton{
			{Text: option.Translation, CallbackData: callbackAnswerPrefix + strconv.Itoa(i+1)},
		})
	}
	buttons = append(buttons, []MenuButton{
		{Text: "Вернуться в " + mainMenuText, CallbackData: callbackBackToMenu},
	})
	return buttons
}

func questionText(question *models.Question) string {
	return fmt.Sprintf("Слово %s переводится как:", question.RightAnswer.Original)
}

// Bot represents the Telegram bot application
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
}

// New authorizes the token and builds a bot routing updates to sessions
func New(token string, sessions Sessions) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	b := &Bot{api: botAPI}
	b.handler = NewHandler(sessions, b)
	return b, nil
}

// Start polls updates and handles them one at a time, in arrival order,
// until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in update %d: %v", update.UpdateID, r)
		}
	}()

	ev, ok := eventFromUpdate(update)
	if !ok {
		return
	}

	if update.CallbackQuery != nil {
		// Always answer the callback query to remove the loading state
		if _, err := b.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			log.Printf("Warning: Failed to answer callback: %v", err)
		}
	}

	// Handle logs its own failures
	_ = b.handler.Handle(ctx, ev)
}

// eventFromUpdate extracts the chat, sender and payload of a message or button press
func eventFromUpdate(update tgbotapi.Update) (Event, bool) {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		msg := update.Message
		return Event{
			ChatID:   msg.Chat.ID,
			Username: senderName(msg.From),
			Time:     msg.Time(),
			Text:     msg.Text,
		}, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		cb := update.CallbackQuery
		// The button press carries no timestamp of its own
		return Event{
			ChatID:   cb.Message.Chat.ID,
			Username: senderName(cb.From),
			Time:     time.Now(),
			Data:     cb.Data,
		}, true
	default:
		return Event{}, false
	}
}

func senderName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}

// SendText implements Notifier
func (b *Bot) SendText(chatID int64, text string) error {
	return b.send(tgbotapi.NewMessage(chatID, text))
}

// SendMenu implements Notifier
func (b *Bot) SendMenu(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ReplyMarkup = createKeyboard(MainMenuButtons())
	return b.send(msg)
}

// SendQuestion implements Notifier
func (b *Bot) SendQuestion(chatID int64, question *models.Question) error {
	msg := tgbotapi.NewMessage(chatID, questionText(question))
	msg.ReplyMarkup = createKeyboard(QuestionButtons(question))
	return b.send(msg)
}

func (b *Bot) send(msg tgbotapi.MessageConfig) error {
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", msg.ChatID, err)
	}
	return nil
}
