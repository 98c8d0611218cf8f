package models

// Question is a multiple-choice translation question.
// RightAnswer is always one of Options.
type Question struct {
	Options     []Word `json:"options"`
	RightAnswer Word   `json:"right_answer"`
}

// RightAnswerPosition returns the 1-based position of the right answer in Options,
// or 0 if it is missing.
func (q *Question) RightAnswerPosition() int {
	for i, w := range q.Options {
		if w.Original == q.RightAnswer.Original {
			return i + 1
		}
	}
	return 0
}
