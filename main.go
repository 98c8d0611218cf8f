package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/learnwords/internal/bot"
	"github.com/example/learnwords/internal/config"
	"github.com/example/learnwords/internal/database"
	"github.com/example/learnwords/internal/dictionary"
	"github.com/example/learnwords/internal/excel"
	"github.com/example/learnwords/internal/scheduler"
	"github.com/example/learnwords/internal/server"
	"github.com/example/learnwords/internal/session"
	"github.com/example/learnwords/internal/trainer"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Создаем контекст, отменяемый по сигналу
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var db *sqlx.DB
	if cfg.DictionaryMode == config.ModeDatabase {
		var err error
		db, err = database.Connect(database.DriverName(cfg.DBType), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := importCatalog(ctx, db, cfg.WordsFile); err != nil {
			log.Fatalf("Failed to import catalog: %v", err)
		}
	}

	registry, err := session.NewRegistry(cfg.SessionCapacity, cfg.SessionTTL, trainerFactory(cfg, db))
	if err != nil {
		log.Fatalf("Failed to create session registry: %v", err)
	}

	sched := scheduler.New(registry, cfg.EvictionInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	if cfg.StatusAddr != "" {
		go func() {
			if err := server.Run(ctx, cfg.StatusAddr, server.NewRouter(registry)); err != nil {
				log.Printf("Status server error: %v", err)
			}
		}()
	}

	b, err := bot.New(cfg.TelegramBotToken, registry)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Bot error: %v", err)
	}
	log.Println("Bot stopped successfully")
}

// importCatalog adds the words of the catalog file missing from the database.
// A malformed file aborts the import as a whole.
func importCatalog(ctx context.Context, db *sqlx.DB, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Printf("Catalog file %s not found, skipping import", path)
		return nil
	}

	words, err := excel.ReadWords(excel.DefaultImportConfig(path))
	if err != nil {
		return err
	}

	added, err := database.NewWordRepository(db).Import(ctx, words)
	if err != nil {
		return err
	}
	log.Printf("Imported %d new words from %s (%d in file)", added, path, len(words))
	return nil
}

// trainerFactory builds the per-chat trainer for the configured dictionary mode
func trainerFactory(cfg *config.Config, db *sqlx.DB) session.Factory {
	return func(ctx context.Context, chatID int64, username string, firstSeen time.Time) (*trainer.Trainer, error) {
		var (
			dict dictionary.Dictionary
			err  error
		)

		switch cfg.DictionaryMode {
		case config.ModeFile:
			path := filepath.Join(cfg.DataDir, strconv.FormatInt(chatID, 10)+".txt")
			dict, err = dictionary.OpenFile(path, cfg.WordsFile, cfg.LearningThreshold)
		default:
			dict, err = dictionary.OpenDatabase(ctx, db, chatID, username, firstSeen, cfg.LearningThreshold)
		}
		if err != nil {
			return nil, err
		}

		log.Printf("Opened %s dictionary for chat %d", dict.Kind(), chatID)
		return trainer.New(dict, trainer.WithNumOfAnswerOptions(cfg.NumOfAnswerOptions)), nil
	}
}
