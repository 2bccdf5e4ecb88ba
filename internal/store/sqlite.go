// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/user"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user',
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tests (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    difficulty TEXT NOT NULL,
    time_limit_minutes INTEGER NOT NULL,
    is_published BOOLEAN NOT NULL DEFAULT FALSE,
    created_by TEXT,
    FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS passages (
    id TEXT PRIMARY KEY,
    test_id TEXT NOT NULL,
    passage_number INTEGER NOT NULL,
    title TEXT,
    content TEXT NOT NULL,
    UNIQUE (test_id, passage_number),
    FOREIGN KEY (test_id) REFERENCES tests(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    passage_id TEXT NOT NULL,
    question_number INTEGER NOT NULL,
    question_type TEXT NOT NULL,
    question_text TEXT NOT NULL,
    options TEXT,
    correct_answer TEXT NOT NULL,
    FOREIGN KEY (passage_id) REFERENCES passages(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS attempts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    test_id TEXT NOT NULL,
    started_at TEXT NOT NULL,
    completed_at TEXT,
    time_spent_seconds INTEGER NOT NULL DEFAULT 0,
    score INTEGER NOT NULL DEFAULT 0,
    band_score REAL NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'in_progress',
    FOREIGN KEY (user_id) REFERENCES users(id),
    FOREIGN KEY (test_id) REFERENCES tests(id)
);

CREATE TABLE IF NOT EXISTS answers (
    id TEXT PRIMARY KEY,
    attempt_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    user_answer TEXT NOT NULL,
    is_correct BOOLEAN NOT NULL,
    FOREIGN KEY (attempt_id) REFERENCES attempts(id) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Users
// ============================================================================

func (s *SQLiteStore) CreateUser(ctx context.Context, u *user.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}
	return err
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at FROM users WHERE email = ?", email))
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, role, created_at FROM users WHERE id = ?", id))
}

func (s *SQLiteStore) scanUser(row *sql.Row) (*user.User, error) {
	var u user.User
	var role, createdAt string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &u, nil
}

// ============================================================================
// Tests
// ============================================================================

// SaveTest persists a test together with its passages and questions in one
// transaction, so a half-written test is never visible.
func (s *SQLiteStore) SaveTest(ctx context.Context, t *readingtest.Test) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tests (id, title, description, difficulty, time_limit_minutes, is_published, created_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.Title, t.Description, t.Difficulty, t.TimeLimitMinutes, t.IsPublished, t.CreatedBy,
	)
	if err != nil {
		return err
	}

	for _, p := range t.Passages {
		if err := insertPassage(ctx, tx, p); err != nil {
			return err
		}
		for _, q := range p.Questions {
			if err := insertQuestion(ctx, tx, q); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPassage(ctx context.Context, e execer, p *readingtest.Passage) error {
	_, err := e.ExecContext(ctx,
		"INSERT INTO passages (id, test_id, passage_number, title, content) VALUES (?, ?, ?, ?, ?)",
		p.ID, p.TestID, p.PassageNumber, p.Title, p.Content,
	)
	return err
}

func insertQuestion(ctx context.Context, e execer, q readingtest.Question) error {
	var options *string
	if len(q.Options) > 0 {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		str := string(raw)
		options = &str
	}
	_, err := e.ExecContext(ctx,
		"INSERT INTO questions (id, passage_id, question_number, question_type, question_text, options, correct_answer) VALUES (?, ?, ?, ?, ?, ?, ?)",
		q.ID, q.PassageID, q.QuestionNumber, string(q.Type), q.Text, options, q.CorrectAnswer,
	)
	return err
}

func (s *SQLiteStore) GetTest(ctx context.Context, id string) (*readingtest.Test, error) {
	var t readingtest.Test
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, difficulty, time_limit_minutes, is_published, created_by FROM tests WHERE id = ?", id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Difficulty, &t.TimeLimitMinutes, &t.IsPublished, &t.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTests returns test metadata, optionally limited to published tests.
func (s *SQLiteStore) ListTests(ctx context.Context, publishedOnly bool) ([]*readingtest.Test, error) {
	query := "SELECT id, title, description, difficulty, time_limit_minutes, is_published, created_by FROM tests"
	if publishedOnly {
		query += " WHERE is_published = TRUE"
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []*readingtest.Test
	for rows.Next() {
		var t readingtest.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Difficulty, &t.TimeLimitMinutes, &t.IsPublished, &t.CreatedBy); err != nil {
			return nil, err
		}
		tests = append(tests, &t)
	}
	return tests, rows.Err()
}

func (s *SQLiteStore) SetTestPublished(ctx context.Context, id string, published bool) error {
	result, err := s.db.ExecContext(ctx, "UPDATE tests SET is_published = ? WHERE id = ?", published, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTest removes a test and everything hanging off it: passages,
// questions, attempts, and attempt answers.
func (s *SQLiteStore) DeleteTest(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM answers
		WHERE attempt_id IN (SELECT id FROM attempts WHERE test_id = ?)
	`, id)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM attempts WHERE test_id = ?", id); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM questions
		WHERE passage_id IN (SELECT id FROM passages WHERE test_id = ?)
	`, id)
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM passages WHERE test_id = ?", id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM tests WHERE id = ?", id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ============================================================================
// Passages & questions
// ============================================================================

func (s *SQLiteStore) SavePassage(ctx context.Context, p *readingtest.Passage) error {
	return insertPassage(ctx, s.db, p)
}

func (s *SQLiteStore) GetPassage(ctx context.Context, id string) (*readingtest.Passage, error) {
	var p readingtest.Passage
	err := s.db.QueryRowContext(ctx,
		"SELECT id, test_id, passage_number, title, content FROM passages WHERE id = ?", id,
	).Scan(&p.ID, &p.TestID, &p.PassageNumber, &p.Title, &p.Content)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPassages returns a test's passages ordered by passage number.
func (s *SQLiteStore) ListPassages(ctx context.Context, testID string) ([]readingtest.Passage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, test_id, passage_number, title, content FROM passages WHERE test_id = ? ORDER BY passage_number",
		testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passages []readingtest.Passage
	for rows.Next() {
		var p readingtest.Passage
		if err := rows.Scan(&p.ID, &p.TestID, &p.PassageNumber, &p.Title, &p.Content); err != nil {
			return nil, err
		}
		passages = append(passages, p)
	}
	return passages, rows.Err()
}

func (s *SQLiteStore) SaveQuestion(ctx context.Context, q readingtest.Question) error {
	return insertQuestion(ctx, s.db, q)
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListQuestions returns every question belonging to the given passages,
// ordered by question number.
func (s *SQLiteStore) ListQuestions(ctx context.Context, passageIDs []string) ([]readingtest.Question, error) {
	if len(passageIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(passageIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(passageIDs))
	for i, id := range passageIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, passage_id, question_number, question_type, question_text, options, correct_answer FROM questions WHERE passage_id IN ("+placeholders+") ORDER BY question_number",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []readingtest.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func scanQuestion(rows *sql.Rows) (readingtest.Question, error) {
	var q readingtest.Question
	var qt string
	var options sql.NullString
	if err := rows.Scan(&q.ID, &q.PassageID, &q.QuestionNumber, &qt, &q.Text, &options, &q.CorrectAnswer); err != nil {
		return q, err
	}
	q.Type = readingtest.QuestionType(qt)
	if options.Valid {
		if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
			return q, fmt.Errorf("decode options for question %s: %w", q.ID, err)
		}
	}
	return q, nil
}
