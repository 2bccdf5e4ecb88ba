package api

import (
	"net/http"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/readingtest"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuestionRequest struct {
	QuestionNumber int      `json:"question_number"`
	Type           string   `json:"type"`
	Text           string   `json:"text"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer"`
}

type CreatePassageRequest struct {
	Title     *string                 `json:"title,omitempty"`
	Content   string                  `json:"content"`
	Questions []CreateQuestionRequest `json:"questions"`
}

type CreateTestRequest struct {
	Title            string                 `json:"title"`
	Description      *string                `json:"description,omitempty"`
	Difficulty       string                 `json:"difficulty"`
	TimeLimitMinutes int                    `json:"time_limit_minutes"`
	Passages         []CreatePassageRequest `json:"passages"`
}

type CreateTestResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	PassageCount  int    `json:"passage_count"`
	QuestionCount int    `json:"question_count"`
	IsPublished   bool   `json:"is_published"`
}

type PublishRequest struct {
	Published bool `json:"published"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /admin/tests
//
// Creates a test together with its passages and questions, mirroring the
// authoring form. The test starts unpublished.
func (h *Handler) createTest(w http.ResponseWriter, r *http.Request) {
	var req CreateTestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	createdBy := identityFrom(r).UserID
	test, err := readingtest.New(req.Title, req.Difficulty, req.TimeLimitMinutes, &createdBy)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	test.Description = req.Description

	for _, pr := range req.Passages {
		p, err := test.AddPassage(pr.Title, pr.Content)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, qr := range pr.Questions {
			err := p.AddQuestion(qr.QuestionNumber, readingtest.QuestionType(qr.Type), qr.Text, qr.Options, qr.CorrectAnswer)
			if err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
		}
	}

	if err := test.ValidateNumbering(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveTest(r.Context(), test); err != nil {
		h.logger.Error("failed to save test", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save test")
		return
	}

	respondJSON(w, http.StatusCreated, CreateTestResponse{
		ID:            test.ID,
		Title:         test.Title,
		PassageCount:  len(test.Passages),
		QuestionCount: len(test.Questions()),
		IsPublished:   test.IsPublished,
	})
}

// DELETE /admin/tests/{testID}
func (h *Handler) deleteTest(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteTest(r.Context(), r.PathValue("testID"))
	if h.handleStoreError(w, err, "test") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PATCH /admin/tests/{testID}/publish
func (h *Handler) publishTest(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.store.SetTestPublished(r.Context(), r.PathValue("testID"), req.Published)
	if h.handleStoreError(w, err, "test") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /admin/tests/{testID}/passages
func (h *Handler) addPassage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	testID := r.PathValue("testID")

	test, err := h.store.GetTest(ctx, testID)
	if h.handleStoreError(w, err, "test") {
		return
	}

	var req CreatePassageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing, err := h.store.ListPassages(ctx, testID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load passages")
		return
	}
	test.Passages = make([]*readingtest.Passage, len(existing))
	for i := range existing {
		test.Passages[i] = &existing[i]
	}

	p, err := test.AddPassage(req.Title, req.Content)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SavePassage(ctx, p); err != nil {
		h.logger.Error("failed to save passage", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save passage")
		return
	}

	respondJSON(w, http.StatusCreated, SessionPassage{
		ID:            p.ID,
		PassageNumber: p.PassageNumber,
		Title:         p.Title,
		Content:       p.Content,
	})
}

// POST /admin/passages/{passageID}/questions
func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	passageID := r.PathValue("passageID")

	p, err := h.store.GetPassage(ctx, passageID)
	if h.handleStoreError(w, err, "passage") {
		return
	}

	var req CreateQuestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err = p.AddQuestion(req.QuestionNumber, readingtest.QuestionType(req.Type), req.Text, req.Options, req.CorrectAnswer)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := p.Questions[len(p.Questions)-1]
	if err := h.store.SaveQuestion(ctx, q); err != nil {
		h.logger.Error("failed to save question", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to save question")
		return
	}

	respondJSON(w, http.StatusCreated, SessionQuestion{
		ID:             q.ID,
		PassageID:      q.PassageID,
		QuestionNumber: q.QuestionNumber,
		Type:           string(q.Type),
		Text:           q.Text,
		Options:        q.Options,
	})
}

// DELETE /admin/questions/{questionID}
func (h *Handler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteQuestion(r.Context(), r.PathValue("questionID"))
	if h.handleStoreError(w, err, "question") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
