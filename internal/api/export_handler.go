package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
)

// ── Request / Response types ────────────────────────────────────────────────

type ExportQuestion struct {
	QuestionNumber int      `json:"question_number"`
	Type           string   `json:"type"`
	Text           string   `json:"text"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer"`
}

type ExportPassage struct {
	PassageNumber int              `json:"passage_number"`
	Title         *string          `json:"title,omitempty"`
	Content       string           `json:"content"`
	Questions     []ExportQuestion `json:"questions"`
}

type ExportTest struct {
	Title            string          `json:"title"`
	Description      *string         `json:"description,omitempty"`
	Difficulty       string          `json:"difficulty"`
	TimeLimitMinutes int             `json:"time_limit_minutes"`
	IsPublished      bool            `json:"is_published"`
	Passages         []ExportPassage `json:"passages"`
}

type ExportData struct {
	Version    string       `json:"version"`
	ExportedAt string       `json:"exported_at"`
	Tests      []ExportTest `json:"tests"`
}

type ImportResult struct {
	TestsCreated     int `json:"tests_created"`
	PassagesCreated  int `json:"passages_created"`
	QuestionsCreated int `json:"questions_created"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /admin/export
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tests, err := h.store.ListTests(ctx, false)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load tests")
		return
	}

	exportData := ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Tests:      make([]ExportTest, 0),
	}

	for _, t := range tests {
		passages, err := h.store.ListPassages(ctx, t.ID)
		if err != nil {
			continue
		}

		exportTest := ExportTest{
			Title:            t.Title,
			Description:      t.Description,
			Difficulty:       t.Difficulty,
			TimeLimitMinutes: t.TimeLimitMinutes,
			IsPublished:      t.IsPublished,
			Passages:         make([]ExportPassage, 0, len(passages)),
		}

		for _, p := range passages {
			questions, err := h.store.ListQuestions(ctx, []string{p.ID})
			if err != nil {
				continue
			}

			exportPassage := ExportPassage{
				PassageNumber: p.PassageNumber,
				Title:         p.Title,
				Content:       p.Content,
				Questions:     make([]ExportQuestion, len(questions)),
			}

			for i, q := range questions {
				exportPassage.Questions[i] = ExportQuestion{
					QuestionNumber: q.QuestionNumber,
					Type:           string(q.Type),
					Text:           q.Text,
					Options:        q.Options,
					CorrectAnswer:  q.CorrectAnswer,
				}
			}

			exportTest.Passages = append(exportTest.Passages, exportPassage)
		}

		exportData.Tests = append(exportData.Tests, exportTest)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=ielts-reading-export.json")
	json.NewEncoder(w).Encode(exportData)
}

// POST /admin/import
//
// Imported tests always start unpublished regardless of the exported flag, so
// an import never exposes material to students before an admin reviews it.
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var importData ExportData
	if !decodeJSON(w, r, &importData) {
		return
	}

	createdBy := identityFrom(r).UserID
	result := ImportResult{}

	for _, et := range importData.Tests {
		test, err := readingtest.New(et.Title, et.Difficulty, et.TimeLimitMinutes, &createdBy)
		if err != nil {
			h.logger.Error("failed to import test", "title", et.Title, "error", err)
			continue
		}
		test.Description = et.Description

		passages := 0
		questions := 0
		for _, ep := range et.Passages {
			p, err := test.AddPassage(ep.Title, ep.Content)
			if err != nil {
				h.logger.Error("failed to import passage", "title", et.Title, "error", err)
				continue
			}
			passages++

			for _, eq := range ep.Questions {
				err := p.AddQuestion(eq.QuestionNumber, readingtest.QuestionType(eq.Type), eq.Text, eq.Options, eq.CorrectAnswer)
				if err != nil {
					h.logger.Error("failed to import question", "title", et.Title, "error", err)
					continue
				}
				questions++
			}
		}

		if err := h.store.SaveTest(ctx, test); err != nil {
			h.logger.Error("failed to save imported test", "title", et.Title, "error", err)
			continue
		}
		result.TestsCreated++
		result.PassagesCreated += passages
		result.QuestionsCreated += questions
	}

	respondJSON(w, http.StatusCreated, result)
}
