package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func savedChoiceTest(t *testing.T, s *SQLiteStore) *readingtest.Test {
	t.Helper()
	test, err := readingtest.New("Practice 1", "easy", 60, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := test.AddPassage(nil, "Passage text")
	if err != nil {
		t.Fatalf("AddPassage: %v", err)
	}
	err = p.AddQuestion(1, readingtest.TypeMultipleChoice, "Pick one", []string{"A", "B", "C"}, "B")
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if err := s.SaveTest(context.Background(), test); err != nil {
		t.Fatalf("SaveTest: %v", err)
	}
	return test
}

func TestListQuestions_OptionsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	test := savedChoiceTest(t, s)

	questions, err := s.ListQuestions(context.Background(), []string{test.Passages[0].ID})
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	got := questions[0].Options
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("expected options %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("option %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestListQuestions_CorruptOptionsColumn(t *testing.T) {
	s := newTestStore(t)
	test := savedChoiceTest(t, s)

	if _, err := s.db.Exec("UPDATE questions SET options = '{not json'"); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}

	if _, err := s.ListQuestions(context.Background(), []string{test.Passages[0].ID}); err == nil {
		t.Error("expected an error for an undecodable options column")
	}
}
