package grader

import (
	"sort"
	"strings"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
)

// AnswerSource yields the collected answer for a question. Implementations
// return the empty string for questions the user never touched.
type AnswerSource interface {
	Get(questionID string) string
}

// QuestionResult is the graded outcome for a single question.
type QuestionResult struct {
	QuestionID string
	UserAnswer string
	IsCorrect  bool
}

// Result is the aggregate grading outcome for one submission.
type Result struct {
	PerQuestion  []QuestionResult
	CorrectCount int
}

// Grade compares every question's collected answer against its correct
// answer, in ascending question-number order. The user answer is trimmed of
// leading and trailing whitespace and compared case-insensitively; no other
// normalization is applied. An empty answer is always incorrect. Grading the
// same inputs twice yields identical results.
func Grade(questions []readingtest.Question, answers AnswerSource) Result {
	ordered := make([]readingtest.Question, len(questions))
	copy(ordered, questions)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].QuestionNumber < ordered[j].QuestionNumber
	})

	result := Result{PerQuestion: make([]QuestionResult, 0, len(ordered))}
	for _, q := range ordered {
		userAnswer := strings.TrimSpace(answers.Get(q.ID))
		correct := userAnswer != "" && strings.EqualFold(userAnswer, q.CorrectAnswer)
		if correct {
			result.CorrectCount++
		}
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			QuestionID: q.ID,
			UserAnswer: userAnswer,
			IsCorrect:  correct,
		})
	}
	return result
}
