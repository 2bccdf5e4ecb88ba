package attempt

import (
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/id"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Attempt is one user's run through a test. It is created when the run
// starts and mutated exactly once, at submission, via Complete.
type Attempt struct {
	ID               string
	UserID           string
	TestID           string
	StartedAt        time.Time
	CompletedAt      *time.Time
	TimeSpentSeconds int
	Score            int
	BandScore        float64
	Status           Status
}

func New(userID, testID string) *Attempt {
	return &Attempt{
		ID:        id.GenerateID(),
		UserID:    userID,
		TestID:    testID,
		StartedAt: time.Now().UTC(),
		Status:    StatusInProgress,
	}
}

// Complete records the grading outcome. All result fields are set together
// so a persisted attempt is never half-finished.
func (a *Attempt) Complete(score int, bandScore float64, timeSpentSeconds int, now time.Time) {
	a.Score = score
	a.BandScore = bandScore
	a.TimeSpentSeconds = timeSpentSeconds
	a.Status = StatusCompleted
	completed := now.UTC()
	a.CompletedAt = &completed
}

// Answer is one graded response within an attempt. Answers are written in a
// single batch at submission and never modified afterwards.
type Answer struct {
	ID         string
	AttemptID  string
	QuestionID string
	UserAnswer string
	IsCorrect  bool
}

func NewAnswer(attemptID, questionID, userAnswer string, isCorrect bool) Answer {
	return Answer{
		ID:         id.GenerateID(),
		AttemptID:  attemptID,
		QuestionID: questionID,
		UserAnswer: userAnswer,
		IsCorrect:  isCorrect,
	}
}
