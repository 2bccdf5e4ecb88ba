package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// AnswerDetail is one graded answer joined with its question, shaped for the
// results view: question order, the text the user saw, what they answered,
// and what would have been correct.
type AnswerDetail struct {
	QuestionID     string
	QuestionNumber int
	QuestionType   string
	QuestionText   string
	CorrectAnswer  string
	UserAnswer     string
	IsCorrect      bool
}
