package models

import "time"

// UserProgress stores how many times a user answered a word correctly
type UserProgress struct {
	UserID             int64     `json:"user_id" db:"user_id"`
	WordID             int64     `json:"word_id" db:"word_id"`
	CorrectAnswerCount int       `json:"correct_answer_count" db:"correct_answer_count"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}
