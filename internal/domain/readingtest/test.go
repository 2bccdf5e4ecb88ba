package readingtest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/id"
)

// Test is a complete examination unit: an ordered set of passages, each
// carrying a slice of the test's questions.
type Test struct {
	ID               string
	Title            string
	Description      *string
	Difficulty       string
	TimeLimitMinutes int
	IsPublished      bool
	CreatedBy        *string
	Passages         []*Passage
}

// Passage is one reading text within a test.
type Passage struct {
	ID            string
	TestID        string
	PassageNumber int // 1-based, unique within the test
	Title         *string
	Content       string
	Questions     []Question
}

var (
	ErrEmptyTitle       = errors.New("test title cannot be empty")
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
	ErrEmptyContent     = errors.New("passage content cannot be empty")
)

// New creates an unpublished test with no passages.
func New(title, difficulty string, timeLimitMinutes int, createdBy *string) (*Test, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if timeLimitMinutes <= 0 {
		return nil, ErrInvalidTimeLimit
	}
	return &Test{
		ID:               id.GenerateID(),
		Title:            title,
		Difficulty:       difficulty,
		TimeLimitMinutes: timeLimitMinutes,
		IsPublished:      false,
		CreatedBy:        createdBy,
		Passages:         []*Passage{},
	}, nil
}

// AddPassage appends a passage with the next passage number and returns it
// so questions can be attached. The returned pointer stays valid however
// many passages are added afterwards.
func (t *Test) AddPassage(title *string, content string) (*Passage, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	p := &Passage{
		ID:            id.GenerateID(),
		TestID:        t.ID,
		PassageNumber: len(t.Passages) + 1,
		Title:         title,
		Content:       content,
		Questions:     []Question{},
	}
	t.Passages = append(t.Passages, p)
	return p, nil
}

// AddQuestion validates and appends a question to the passage.
func (p *Passage) AddQuestion(number int, qt QuestionType, text string, options []string, correctAnswer string) error {
	q := Question{
		ID:             id.GenerateID(),
		PassageID:      p.ID,
		QuestionNumber: number,
		Type:           qt,
		Text:           text,
		Options:        options,
		CorrectAnswer:  correctAnswer,
	}
	if err := q.Validate(); err != nil {
		return err
	}
	p.Questions = append(p.Questions, q)
	return nil
}

// Questions returns every question in the test, ordered by question number.
func (t *Test) Questions() []Question {
	var all []Question
	for _, p := range t.Passages {
		all = append(all, p.Questions...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].QuestionNumber < all[j].QuestionNumber
	})
	return all
}

// ValidateNumbering checks that question numbers across all passages are
// unique and contiguous starting at 1.
func (t *Test) ValidateNumbering() error {
	all := t.Questions()
	seen := make(map[int]struct{}, len(all))
	for _, q := range all {
		if _, dup := seen[q.QuestionNumber]; dup {
			return fmt.Errorf("duplicate question number %d", q.QuestionNumber)
		}
		seen[q.QuestionNumber] = struct{}{}
	}
	for n := 1; n <= len(all); n++ {
		if _, ok := seen[n]; !ok {
			return fmt.Errorf("question numbers are not contiguous: missing %d", n)
		}
	}
	return nil
}
