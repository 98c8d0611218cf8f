package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Dictionary modes
const (
	ModeDatabase = "database"
	ModeFile     = "file"
)

// Config represents the configuration of the bot process
type Config struct {
	TelegramBotToken string
	// Database driver: "sqlite" or "postgres"
	DBType      string
	DatabaseURL string
	// Where user progress lives: "database" or "file"
	DictionaryMode string
	// Catalog imported at startup (database mode) or used as seed (file mode)
	WordsFile string
	// Directory with per-user dictionary files (file mode)
	DataDir string

	LearningThreshold  int
	NumOfAnswerOptions int

	SessionCapacity  int
	SessionTTL       time.Duration
	EvictionInterval time.Duration

	// Address of the status server, empty disables it
	StatusAddr string
}

// Load reads the configuration from the environment. A .env file is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TelegramBotToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		DBType:             getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:        getEnv("DATABASE_URL", "data/learnwords.db"),
		DictionaryMode:     getEnv("DICTIONARY_MODE", ModeDatabase),
		WordsFile:          getEnv("WORDS_FILE", "words.txt"),
		DataDir:            getEnv("DATA_DIR", "data"),
		LearningThreshold:  getEnvInt("LEARNING_THRESHOLD", 3),
		NumOfAnswerOptions: getEnvInt("ANSWER_OPTIONS", 4),
		SessionCapacity:    getEnvInt("SESSION_CAPACITY", 1000),
		SessionTTL:         getEnvDuration("SESSION_TTL", 24*time.Hour),
		EvictionInterval:   getEnvDuration("EVICTION_INTERVAL", 10*time.Minute),
		StatusAddr:         statusAddr(),
	}
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	if c.DBType != "sqlite" && c.DBType != "postgres" {
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.DictionaryMode != ModeDatabase && c.DictionaryMode != ModeFile {
		return fmt.Errorf("unsupported DICTIONARY_MODE %q", c.DictionaryMode)
	}
	if c.LearningThreshold < 1 {
		return fmt.Errorf("LEARNING_THRESHOLD must be positive, got %d", c.LearningThreshold)
	}
	if c.NumOfAnswerOptions < 1 {
		return fmt.Errorf("ANSWER_OPTIONS must be positive, got %d", c.NumOfAnswerOptions)
	}
	if c.SessionCapacity < 1 {
		return fmt.Errorf("SESSION_CAPACITY must be positive, got %d", c.SessionCapacity)
	}
	return nil
}

// statusAddr keeps an explicitly empty STATUS_ADDR, which disables the server
func statusAddr() string {
	if value, ok := os.LookupEnv("STATUS_ADDR"); ok {
		return value
	}
	return ":8080"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
