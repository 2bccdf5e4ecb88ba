package session

import (
	"sync"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/attempt"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/id"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/timer"
)

// State is the session controller's lifecycle state.
type State string

const (
	StateLoading    State = "loading"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Session is one user's live run through a test: the loaded test data, the
// answer collector, and the countdown. All state transitions go through the
// mutex so the timer-expiry path and the manual-submit path collapse into
// exactly one submission.
type Session struct {
	ID     string
	UserID string
	TestID string

	mu        sync.Mutex
	state     State
	startedAt time.Time // when the run began, stamped onto the attempt

	test      *readingtest.Test
	passages  []readingtest.Passage
	questions []readingtest.Question
	collector *Collector
	countdown *timer.Countdown

	limitSeconds int
	timeSpent    int // frozen on the first transition out of InProgress

	// Submission bookkeeping. The attempt is built once; a retry after a
	// failed answer batch re-uses it instead of creating a second record.
	pending          *attempt.Attempt
	attemptPersisted bool
	attemptID        string
	lastErr          error
}

func newSession(userID, testID string) *Session {
	return &Session{
		ID:        id.GenerateID(),
		UserID:    userID,
		TestID:    testID,
		state:     StateLoading,
		startedAt: time.Now().UTC(),
		collector: NewCollector(),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Test() *readingtest.Test { return s.test }

func (s *Session) Passages() []readingtest.Passage { return s.passages }

func (s *Session) Questions() []readingtest.Question { return s.questions }

// Answer returns the currently collected answer for a question.
func (s *Session) Answer(questionID string) string {
	return s.collector.Get(questionID)
}

// Answers returns a snapshot of every collected answer.
func (s *Session) Answers() map[string]string {
	return s.collector.Snapshot()
}

// Remaining returns the countdown's remaining seconds.
func (s *Session) Remaining() int {
	if s.countdown == nil {
		return 0
	}
	return s.countdown.Remaining()
}

// Urgent reports whether the countdown is in its final stretch.
func (s *Session) Urgent() bool {
	return s.countdown != nil && s.countdown.Urgent()
}

// AttemptID returns the persisted attempt's ID once the session completes.
func (s *Session) AttemptID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptID
}

// Err returns the error recorded by a failed submission, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// hasQuestion reports whether the question belongs to this session's test.
func (s *Session) hasQuestion(questionID string) bool {
	for _, q := range s.questions {
		if q.ID == questionID {
			return true
		}
	}
	return false
}

// beginSubmit moves the session into Submitting if it is eligible: either
// in progress (first submission) or failed (manual retry). It reports
// whether the caller won the transition; losers must not submit. On the
// first transition the countdown is stopped and the elapsed time frozen.
func (s *Session) beginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateInProgress:
		s.countdown.Stop()
		s.timeSpent = s.limitSeconds - s.countdown.Remaining()
	case StateFailed:
		// Elapsed time already frozen by the first submission.
	default:
		return false
	}
	s.state = StateSubmitting
	s.lastErr = nil
	return true
}

func (s *Session) failSubmit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.lastErr = err
}

func (s *Session) completeSubmit(attemptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateCompleted
	s.attemptID = attemptID
}
