package models

import "testing"

func TestNewStatistics(t *testing.T) {
	tests := []struct {
		name           string
		total, learned int
		want           Statistics
	}{
		{"empty catalog", 0, 0, Statistics{}},
		{"one of five", 5, 1, Statistics{TotalWords: 5, LearnedWords: 1, LearnedPercent: 20}},
		{"rounds down", 3, 2, Statistics{TotalWords: 3, LearnedWords: 2, LearnedPercent: 66}},
		{"all learned", 4, 4, Statistics{TotalWords: 4, LearnedWords: 4, LearnedPercent: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewStatistics(tt.total, tt.learned); got != tt.want {
				t.Errorf("NewStatistics(%d, %d) = %+v, want %+v", tt.total, tt.learned, got, tt.want)
			}
		})
	}
}

func TestRightAnswerPosition(t *testing.T) {
	q := Question{Options: []Word{{Original: "cat"}, {Original: "dog"}, {Original: "sun"}}}

	q.RightAnswer = Word{Original: "dog"}
	if got := q.RightAnswerPosition(); got != 2 {
		t.Errorf("expected position 2, got %d", got)
	}

	q.RightAnswer = Word{Original: "sky"}
	if got := q.RightAnswerPosition(); got != 0 {
		t.Errorf("expected 0 for a missing answer, got %d", got)
	}
}

func TestIsLearned(t *testing.T) {
	w := Word{CorrectAnswersCount: 3}
	if !w.IsLearned(3) || w.IsLearned(4) {
		t.Errorf("unexpected learned state for count 3")
	}
}
