package models

// Word is a catalog entry together with the calling user's progress on it.
// Original is the identity of the word inside the catalog.
type Word struct {
	ID                  int64  `json:"id" db:"id"`
	Original            string `json:"original" db:"text"`
	Translation         string `json:"translation" db:"translation"`
	CorrectAnswersCount int    `json:"correct_answers_count" db:"correct_answer_count"`
}

// IsLearned reports whether the word reached the given threshold
func (w Word) IsLearned(threshold int) bool {
	return w.CorrectAnswersCount >= threshold
}

// Statistics is a read-only snapshot of a user's progress
type Statistics struct {
	TotalWords     int `json:"total_words"`
	LearnedWords   int `json:"learned_words"`
	LearnedPercent int `json:"learned_percent"`
}

// NewStatistics builds a snapshot. An empty catalog yields the zero value.
func NewStatistics(total, learned int) Statistics {
	if total <= 0 {
		return Statistics{}
	}
	return Statistics{
		TotalWords:     total,
		LearnedWords:   learned,
		LearnedPercent: 100 * learned / total,
	}
}
