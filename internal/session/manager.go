package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/band"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/attempt"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/grader"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/store"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/timer"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/worker"
)

// Store is the persistence surface the session controller needs. The SQLite
// store satisfies it; tests inject fakes.
type Store interface {
	GetTest(ctx context.Context, testID string) (*readingtest.Test, error)
	ListPassages(ctx context.Context, testID string) ([]readingtest.Passage, error)
	ListQuestions(ctx context.Context, passageIDs []string) ([]readingtest.Question, error)
	GetCompletedAttempt(ctx context.Context, userID, testID string) (*attempt.Attempt, error)
	CreateAttempt(ctx context.Context, a *attempt.Attempt) error
	CreateAnswers(ctx context.Context, answers []attempt.Answer) error
}

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotInProgress    = errors.New("session is not in progress")
	ErrUnknownQuestion  = errors.New("question is not part of this session")
	ErrSubmitInFlight   = errors.New("submission already in flight")
	ErrTestNotPublished = errors.New("test is not published")
)

// AlreadyCompletedError signals that the user has already finished this test
// and should be redirected to the existing attempt's results.
type AlreadyCompletedError struct {
	AttemptID string
}

func (e *AlreadyCompletedError) Error() string {
	return "test already completed in attempt " + e.AttemptID
}

// ManagerConfig holds the session manager's policy knobs.
type ManagerConfig struct {
	// AllowRetake disables the completed-attempt redirect, letting users
	// take the same test again.
	AllowRetake bool
	// TickInterval overrides the countdown's one-second tick. Zero means
	// one second; tests shorten it.
	TickInterval time.Duration
}

// submitOutcome is the worker pool's result type for timer-expiry
// submissions.
type submitOutcome struct {
	SessionID string
	AttemptID string
	Err       error
}

// Manager owns all live sessions. It loads test data, runs the countdown,
// routes answer edits, and funnels both submit triggers (manual and expiry)
// into one guarded path.
type Manager struct {
	store        Store
	logger       *slog.Logger
	allowRetake  bool
	tickInterval time.Duration
	pool         *worker.Pool[submitOutcome]

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a Manager and starts the pool that executes
// timer-expiry submissions.
func NewManager(st Store, logger *slog.Logger, cfg ManagerConfig) *Manager {
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	m := &Manager{
		store:        st,
		logger:       logger,
		allowRetake:  cfg.AllowRetake,
		tickInterval: interval,
		pool:         worker.NewPool[submitOutcome](4, 16),
		sessions:     make(map[string]*Session),
	}
	go m.drainOutcomes()
	return m
}

// drainOutcomes logs the results of auto-submissions executed by the pool.
func (m *Manager) drainOutcomes() {
	for res := range m.pool.Results() {
		out := res.Output
		if out.Err != nil {
			m.logger.Error("auto-submit failed",
				"session_id", out.SessionID, "error", out.Err)
			continue
		}
		m.logger.Info("session auto-submitted on expiry",
			"session_id", out.SessionID, "attempt_id", out.AttemptID)
	}
}

// Begin loads a test and starts a session for it. If the user already has a
// completed attempt and retakes are disabled, it returns
// *AlreadyCompletedError carrying the attempt to redirect to. Load failures
// return before any session or attempt state exists.
func (m *Manager) Begin(ctx context.Context, userID, testID string) (*Session, error) {
	if !m.allowRetake {
		prev, err := m.store.GetCompletedAttempt(ctx, userID, testID)
		if err == nil {
			return nil, &AlreadyCompletedError{AttemptID: prev.ID}
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("check previous attempts: %w", err)
		}
	}

	s := newSession(userID, testID)

	test, err := m.store.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if !test.IsPublished {
		return nil, ErrTestNotPublished
	}

	passages, err := m.store.ListPassages(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load passages: %w", err)
	}

	passageIDs := make([]string, len(passages))
	for i, p := range passages {
		passageIDs[i] = p.ID
	}
	questions, err := m.store.ListQuestions(ctx, passageIDs)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	s.test = test
	s.passages = passages
	s.questions = questions
	s.limitSeconds = test.TimeLimitMinutes * 60

	sessionID := s.ID
	s.countdown = timer.NewWithInterval(s.limitSeconds, m.tickInterval, func() {
		m.autoSubmit(sessionID)
	})

	s.mu.Lock()
	s.state = StateInProgress
	s.mu.Unlock()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.countdown.Start()
	return s, nil
}

// Get returns a live session by ID.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// SetAnswer routes an answer edit to the session's collector. Edits are only
// accepted while the session is in progress.
func (m *Manager) SetAnswer(sessionID, questionID, text string) error {
	s, err := m.Get(sessionID)
	if err != nil {
		return err
	}
	if s.State() != StateInProgress {
		return ErrNotInProgress
	}
	if !s.hasQuestion(questionID) {
		return ErrUnknownQuestion
	}
	s.collector.Set(questionID, text)
	return nil
}

// autoSubmit is the countdown's expiry callback. The actual submission runs
// on the worker pool so the tick goroutine never does store I/O.
func (m *Manager) autoSubmit(sessionID string) {
	m.pool.Submit(sessionID, func() submitOutcome {
		attemptID, err := m.Submit(context.Background(), sessionID)
		if errors.Is(err, ErrSubmitInFlight) {
			// Lost the race against a manual submit; nothing to do.
			err = nil
		}
		return submitOutcome{SessionID: sessionID, AttemptID: attemptID, Err: err}
	})
}

// Submit grades the collected answers and persists the attempt with its
// answer batch. It is guarded: however many triggers race — manual clicks,
// timer expiry — exactly one submission runs, and a call that arrives while
// one is in flight gets ErrSubmitInFlight. After a persistence failure the
// answers and elapsed time stay in memory and Submit may be called again.
func (m *Manager) Submit(ctx context.Context, sessionID string) (string, error) {
	s, err := m.Get(sessionID)
	if err != nil {
		return "", err
	}

	if !s.beginSubmit() {
		if s.State() == StateCompleted {
			return s.AttemptID(), nil
		}
		return "", ErrSubmitInFlight
	}

	result := grader.Grade(s.questions, s.collector)

	if s.pending == nil {
		s.pending = attempt.New(s.UserID, s.TestID)
		s.pending.StartedAt = s.startedAt
	}
	att := s.pending
	att.Complete(
		result.CorrectCount,
		band.For(result.CorrectCount, len(s.questions)),
		s.timeSpent,
		time.Now(),
	)

	if !s.attemptPersisted {
		if err := m.store.CreateAttempt(ctx, att); err != nil {
			s.failSubmit(err)
			return "", fmt.Errorf("create attempt: %w", err)
		}
		s.attemptPersisted = true
	}

	answers := make([]attempt.Answer, 0, len(result.PerQuestion))
	for _, pq := range result.PerQuestion {
		answers = append(answers, attempt.NewAnswer(att.ID, pq.QuestionID, pq.UserAnswer, pq.IsCorrect))
	}
	if err := m.store.CreateAnswers(ctx, answers); err != nil {
		s.failSubmit(err)
		return "", fmt.Errorf("create answers: %w", err)
	}

	s.completeSubmit(att.ID)
	m.logger.Info("attempt submitted",
		"session_id", sessionID,
		"attempt_id", att.ID,
		"score", att.Score,
		"band", att.BandScore,
	)
	return att.ID, nil
}

// Close tears a session down: the countdown stops and the session is
// forgotten. Used when the user abandons a test or after results have been
// fetched.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok && s.countdown != nil {
		s.countdown.Stop()
	}
}
