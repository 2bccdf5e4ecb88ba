package readingtest

import "errors"

// QuestionType is the closed set of IELTS reading question formats. The type
// determines which input affordance the client renders and whether the
// question carries authored options.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalseNG    QuestionType = "true_false_not_given"
	TypeYesNoNG        QuestionType = "yes_no_not_given"

	// Free-text family: the answer is typed, not selected.
	TypeSentenceCompletion  QuestionType = "sentence_completion"
	TypeSummaryCompletion   QuestionType = "summary_completion"
	TypeShortAnswer         QuestionType = "short_answer"
	TypeNoteCompletion      QuestionType = "note_completion"
	TypeTableCompletion     QuestionType = "table_completion"
	TypeFlowChartCompletion QuestionType = "flow_chart_completion"
	TypeDiagramLabel        QuestionType = "diagram_label"

	// Matching family: the answer is picked from an authored list.
	TypeMatchingHeadings    QuestionType = "matching_headings"
	TypeMatchingInformation QuestionType = "matching_information"
	TypeMatchingFeatures    QuestionType = "matching_features"
	TypeListSelection       QuestionType = "list_selection"
)

var questionTypes = map[QuestionType]struct{}{
	TypeMultipleChoice:      {},
	TypeTrueFalseNG:         {},
	TypeYesNoNG:             {},
	TypeSentenceCompletion:  {},
	TypeSummaryCompletion:   {},
	TypeShortAnswer:         {},
	TypeNoteCompletion:      {},
	TypeTableCompletion:     {},
	TypeFlowChartCompletion: {},
	TypeDiagramLabel:        {},
	TypeMatchingHeadings:    {},
	TypeMatchingInformation: {},
	TypeMatchingFeatures:    {},
	TypeListSelection:       {},
}

func (t QuestionType) Valid() bool {
	_, ok := questionTypes[t]
	return ok
}

// RequiresOptions reports whether questions of this type must be authored
// with an options list.
func (t QuestionType) RequiresOptions() bool {
	switch t {
	case TypeMultipleChoice, TypeMatchingHeadings, TypeMatchingInformation,
		TypeMatchingFeatures, TypeListSelection:
		return true
	}
	return false
}

// FixedOptions returns the built-in option set for types whose choices are
// dictated by the format itself, or nil for all other types.
func (t QuestionType) FixedOptions() []string {
	switch t {
	case TypeTrueFalseNG:
		return []string{"TRUE", "FALSE", "NOT GIVEN"}
	case TypeYesNoNG:
		return []string{"YES", "NO", "NOT GIVEN"}
	}
	return nil
}

// Question is one gradable item within a passage.
type Question struct {
	ID             string
	PassageID      string
	QuestionNumber int // 1-based, unique across the whole test
	Type           QuestionType
	Text           string
	Options        []string // nil unless the type requires authored options
	CorrectAnswer  string
}

var (
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrOptionsRequired     = errors.New("question type requires options")
	ErrEmptyQuestionText   = errors.New("question text cannot be empty")
	ErrEmptyCorrectAnswer  = errors.New("correct answer cannot be empty")
)

// Validate checks the authored question against the rules of its type.
func (q *Question) Validate() error {
	if !q.Type.Valid() {
		return ErrInvalidQuestionType
	}
	if q.Text == "" {
		return ErrEmptyQuestionText
	}
	if q.CorrectAnswer == "" {
		return ErrEmptyCorrectAnswer
	}
	if q.Type.RequiresOptions() && len(q.Options) == 0 {
		return ErrOptionsRequired
	}
	return nil
}
