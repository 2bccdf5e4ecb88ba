package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/attempt"
)

// ============================================================================
// Attempts
// ============================================================================

func (s *SQLiteStore) CreateAttempt(ctx context.Context, a *attempt.Attempt) error {
	var completedAt *string
	if a.CompletedAt != nil {
		str := a.CompletedAt.UTC().Format(time.RFC3339)
		completedAt = &str
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO attempts (id, user_id, test_id, started_at, completed_at, time_spent_seconds, score, band_score, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		a.ID, a.UserID, a.TestID, a.StartedAt.UTC().Format(time.RFC3339), completedAt,
		a.TimeSpentSeconds, a.Score, a.BandScore, string(a.Status),
	)
	return err
}

func (s *SQLiteStore) GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, test_id, started_at, completed_at, time_spent_seconds, score, band_score, status FROM attempts WHERE id = ?",
		id,
	)
	return scanAttempt(row)
}

// GetCompletedAttempt returns the user's most recent completed attempt for a
// test, or ErrNotFound when the user has never finished it.
func (s *SQLiteStore) GetCompletedAttempt(ctx context.Context, userID, testID string) (*attempt.Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, test_id, started_at, completed_at, time_spent_seconds, score, band_score, status
		 FROM attempts
		 WHERE user_id = ? AND test_id = ? AND status = ?
		 ORDER BY completed_at DESC LIMIT 1`,
		userID, testID, string(attempt.StatusCompleted),
	)
	return scanAttempt(row)
}

// ListAttemptsByUser returns the user's attempts, most recent first.
func (s *SQLiteStore) ListAttemptsByUser(ctx context.Context, userID string) ([]*attempt.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, test_id, started_at, completed_at, time_spent_seconds, score, band_score, status
		 FROM attempts WHERE user_id = ? ORDER BY started_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*attempt.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// CountAttempts returns how many completed attempts a test has received.
func (s *SQLiteStore) CountAttempts(ctx context.Context, testID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attempts WHERE test_id = ? AND status = ?",
		testID, string(attempt.StatusCompleted),
	).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*attempt.Attempt, error) {
	var a attempt.Attempt
	var startedAt string
	var completedAt sql.NullString
	var status string

	err := row.Scan(&a.ID, &a.UserID, &a.TestID, &startedAt, &completedAt,
		&a.TimeSpentSeconds, &a.Score, &a.BandScore, &status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Status = attempt.Status(status)
	a.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err == nil {
			a.CompletedAt = &t
		}
	}
	return &a, nil
}

// ============================================================================
// Answers
// ============================================================================

// CreateAnswers writes an attempt's full answer batch in one transaction.
func (s *SQLiteStore) CreateAnswers(ctx context.Context, answers []attempt.Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range answers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO answers (id, attempt_id, question_id, user_answer, is_correct) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.AttemptID, a.QuestionID, a.UserAnswer, a.IsCorrect,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListAnswerDetails returns an attempt's answers joined with their
// questions, ordered by question number, for the results view.
func (s *SQLiteStore) ListAnswerDetails(ctx context.Context, attemptID string) ([]AnswerDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.question_number, q.question_type, q.question_text, q.correct_answer, a.user_answer, a.is_correct
		 FROM answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.attempt_id = ?
		 ORDER BY q.question_number`,
		attemptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []AnswerDetail
	for rows.Next() {
		var d AnswerDetail
		if err := rows.Scan(&d.QuestionID, &d.QuestionNumber, &d.QuestionType, &d.QuestionText,
			&d.CorrectAnswer, &d.UserAnswer, &d.IsCorrect); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
