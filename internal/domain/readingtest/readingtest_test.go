package readingtest_test

import (
	"errors"
	"testing"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
)

func TestNew_Validation(t *testing.T) {
	if _, err := readingtest.New("", "easy", 60, nil); !errors.Is(err, readingtest.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := readingtest.New("Practice 1", "easy", 0, nil); !errors.Is(err, readingtest.ErrInvalidTimeLimit) {
		t.Errorf("expected ErrInvalidTimeLimit, got %v", err)
	}

	test, err := readingtest.New("Practice 1", "easy", 60, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if test.IsPublished {
		t.Error("new tests must start unpublished")
	}
	if test.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestAddPassage_NumbersSequentially(t *testing.T) {
	test, _ := readingtest.New("Practice 1", "easy", 60, nil)

	if _, err := test.AddPassage(nil, ""); !errors.Is(err, readingtest.ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}

	p1, err := test.AddPassage(nil, "First passage text")
	if err != nil {
		t.Fatalf("AddPassage: %v", err)
	}
	p2, err := test.AddPassage(nil, "Second passage text")
	if err != nil {
		t.Fatalf("AddPassage: %v", err)
	}

	if p1.PassageNumber != 1 || p2.PassageNumber != 2 {
		t.Errorf("expected passage numbers 1 and 2, got %d and %d", p1.PassageNumber, p2.PassageNumber)
	}
	if p1.TestID != test.ID {
		t.Error("passage not linked to its test")
	}
}

func TestAddPassage_PointerSurvivesLaterAdds(t *testing.T) {
	test, _ := readingtest.New("Practice 1", "easy", 60, nil)

	p1, err := test.AddPassage(nil, "First passage text")
	if err != nil {
		t.Fatalf("AddPassage: %v", err)
	}

	// Grow the passage slice after taking the pointer.
	for i := 0; i < 4; i++ {
		if _, err := test.AddPassage(nil, "Later passage text"); err != nil {
			t.Fatalf("AddPassage: %v", err)
		}
	}

	if err := p1.AddQuestion(1, readingtest.TypeShortAnswer, "Q1", nil, "a"); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	all := test.Questions()
	if len(all) != 1 {
		t.Fatalf("question added through earlier passage pointer lost: got %d questions", len(all))
	}
	if all[0].PassageID != p1.ID {
		t.Errorf("question attached to passage %s, want %s", all[0].PassageID, p1.ID)
	}
}

func TestQuestionType_Capabilities(t *testing.T) {
	tests := []struct {
		qt              readingtest.QuestionType
		valid           bool
		requiresOptions bool
		fixedOptions    []string
	}{
		{readingtest.TypeMultipleChoice, true, true, nil},
		{readingtest.TypeTrueFalseNG, true, false, []string{"TRUE", "FALSE", "NOT GIVEN"}},
		{readingtest.TypeYesNoNG, true, false, []string{"YES", "NO", "NOT GIVEN"}},
		{readingtest.TypeShortAnswer, true, false, nil},
		{readingtest.TypeSentenceCompletion, true, false, nil},
		{readingtest.TypeMatchingHeadings, true, true, nil},
		{readingtest.TypeMatchingFeatures, true, true, nil},
		{readingtest.TypeListSelection, true, true, nil},
		{readingtest.QuestionType("essay"), false, false, nil},
	}

	for _, tc := range tests {
		if got := tc.qt.Valid(); got != tc.valid {
			t.Errorf("%s: Valid() = %v, want %v", tc.qt, got, tc.valid)
		}
		if got := tc.qt.RequiresOptions(); got != tc.requiresOptions {
			t.Errorf("%s: RequiresOptions() = %v, want %v", tc.qt, got, tc.requiresOptions)
		}
		fixed := tc.qt.FixedOptions()
		if len(fixed) != len(tc.fixedOptions) {
			t.Errorf("%s: FixedOptions() = %v, want %v", tc.qt, fixed, tc.fixedOptions)
			continue
		}
		for i := range fixed {
			if fixed[i] != tc.fixedOptions[i] {
				t.Errorf("%s: FixedOptions()[%d] = %q, want %q", tc.qt, i, fixed[i], tc.fixedOptions[i])
			}
		}
	}
}

func TestAddQuestion_Validation(t *testing.T) {
	test, _ := readingtest.New("Practice 1", "easy", 60, nil)
	p, _ := test.AddPassage(nil, "Passage text")

	tests := []struct {
		name    string
		qt      readingtest.QuestionType
		text    string
		options []string
		answer  string
		wantErr error
	}{
		{"invalid type", readingtest.QuestionType("essay"), "Q", nil, "A", readingtest.ErrInvalidQuestionType},
		{"empty text", readingtest.TypeShortAnswer, "", nil, "A", readingtest.ErrEmptyQuestionText},
		{"empty answer", readingtest.TypeShortAnswer, "Q", nil, "", readingtest.ErrEmptyCorrectAnswer},
		{"choice without options", readingtest.TypeMultipleChoice, "Q", nil, "A", readingtest.ErrOptionsRequired},
		{"tfng needs no options", readingtest.TypeTrueFalseNG, "Q", nil, "TRUE", nil},
		{"choice with options", readingtest.TypeMultipleChoice, "Q", []string{"A", "B", "C"}, "B", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := p.AddQuestion(1, tc.qt, tc.text, tc.options, tc.answer)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestQuestions_OrderedAcrossPassages(t *testing.T) {
	test, _ := readingtest.New("Practice 1", "easy", 60, nil)
	p1, _ := test.AddPassage(nil, "First")
	p2, _ := test.AddPassage(nil, "Second")

	// Authored out of order on purpose.
	p2.AddQuestion(3, readingtest.TypeShortAnswer, "Q3", nil, "c")
	p1.AddQuestion(1, readingtest.TypeShortAnswer, "Q1", nil, "a")
	p2.AddQuestion(4, readingtest.TypeShortAnswer, "Q4", nil, "d")
	p1.AddQuestion(2, readingtest.TypeShortAnswer, "Q2", nil, "b")

	all := test.Questions()
	if len(all) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(all))
	}
	for i, q := range all {
		if q.QuestionNumber != i+1 {
			t.Errorf("position %d: expected question %d, got %d", i, i+1, q.QuestionNumber)
		}
	}
}

func TestValidateNumbering(t *testing.T) {
	newTest := func() (*readingtest.Test, *readingtest.Passage) {
		test, _ := readingtest.New("Practice 1", "easy", 60, nil)
		p, _ := test.AddPassage(nil, "Text")
		return test, p
	}

	t.Run("contiguous numbers pass", func(t *testing.T) {
		test, p := newTest()
		p.AddQuestion(1, readingtest.TypeShortAnswer, "Q", nil, "a")
		p.AddQuestion(2, readingtest.TypeShortAnswer, "Q", nil, "b")
		if err := test.ValidateNumbering(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("duplicate number fails", func(t *testing.T) {
		test, p := newTest()
		p.AddQuestion(1, readingtest.TypeShortAnswer, "Q", nil, "a")
		p.AddQuestion(1, readingtest.TypeShortAnswer, "Q", nil, "b")
		if err := test.ValidateNumbering(); err == nil {
			t.Error("expected duplicate number to fail")
		}
	})

	t.Run("gap fails", func(t *testing.T) {
		test, p := newTest()
		p.AddQuestion(1, readingtest.TypeShortAnswer, "Q", nil, "a")
		p.AddQuestion(3, readingtest.TypeShortAnswer, "Q", nil, "b")
		if err := test.ValidateNumbering(); err == nil {
			t.Error("expected gap in numbering to fail")
		}
	})

	t.Run("numbering not starting at one fails", func(t *testing.T) {
		test, p := newTest()
		p.AddQuestion(2, readingtest.TypeShortAnswer, "Q", nil, "a")
		if err := test.ValidateNumbering(); err == nil {
			t.Error("expected numbering starting at 2 to fail")
		}
	})
}
