package models

import (
	"database/sql"
	"time"
)

// User represents a chat user of the bot
type User struct {
	ID          int64          `json:"id" db:"id"`
	DisplayName sql.NullString `json:"display_name" db:"username"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	ChatID      int64          `json:"chat_id" db:"chat_id"`
}
