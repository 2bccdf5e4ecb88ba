package grader_test

import (
	"reflect"
	"testing"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/grader"
)

type mapSource map[string]string

func (m mapSource) Get(questionID string) string { return m[questionID] }

func question(id string, number int, correct string) readingtest.Question {
	return readingtest.Question{
		ID:             id,
		QuestionNumber: number,
		Type:           readingtest.TypeShortAnswer,
		Text:           "q",
		CorrectAnswer:  correct,
	}
}

func TestGrade_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		answer  string
		want    bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"lowercase answer", "Paris", "paris", true},
		{"uppercase answer", "Paris", "PARIS", true},
		{"surrounding whitespace trimmed", "Paris", "  Paris  ", true},
		{"wrong answer", "Paris", "London", false},
		{"empty answer", "Paris", "", false},
		{"whitespace-only answer", "Paris", "   ", false},
		{"internal whitespace not normalized", "Not Given", "NotGiven", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := []readingtest.Question{question("q1", 1, tt.correct)}
			res := grader.Grade(qs, mapSource{"q1": tt.answer})

			if res.PerQuestion[0].IsCorrect != tt.want {
				t.Errorf("answer %q vs correct %q: got %v, want %v",
					tt.answer, tt.correct, res.PerQuestion[0].IsCorrect, tt.want)
			}
		})
	}
}

func TestGrade_UntouchedQuestionIsIncorrect(t *testing.T) {
	qs := []readingtest.Question{question("q1", 1, "Paris")}
	res := grader.Grade(qs, mapSource{})

	if res.CorrectCount != 0 {
		t.Errorf("expected 0 correct, got %d", res.CorrectCount)
	}
	if len(res.PerQuestion) != 1 {
		t.Fatalf("expected untouched question to still be graded, got %d results", len(res.PerQuestion))
	}
	if res.PerQuestion[0].IsCorrect {
		t.Error("expected untouched question to be incorrect")
	}
}

func TestGrade_OrderedByQuestionNumber(t *testing.T) {
	qs := []readingtest.Question{
		question("q3", 3, "c"),
		question("q1", 1, "a"),
		question("q2", 2, "b"),
	}
	res := grader.Grade(qs, mapSource{"q1": "a", "q2": "b", "q3": "c"})

	wantOrder := []string{"q1", "q2", "q3"}
	for i, pq := range res.PerQuestion {
		if pq.QuestionID != wantOrder[i] {
			t.Fatalf("result %d: expected question %s, got %s", i, wantOrder[i], pq.QuestionID)
		}
	}
	if res.CorrectCount != 3 {
		t.Errorf("expected 3 correct, got %d", res.CorrectCount)
	}
}

func TestGrade_Idempotent(t *testing.T) {
	qs := []readingtest.Question{
		question("q1", 1, "TRUE"),
		question("q2", 2, "FALSE"),
		question("q3", 3, "osmosis"),
	}
	answers := mapSource{"q1": "true", "q2": "NOT GIVEN", "q3": " Osmosis "}

	first := grader.Grade(qs, answers)
	second := grader.Grade(qs, answers)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results when grading the same inputs twice")
	}
	if first.CorrectCount != 2 {
		t.Errorf("expected 2 correct, got %d", first.CorrectCount)
	}
}
