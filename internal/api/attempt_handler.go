package api

import (
	"net/http"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/attempt"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/user"
)

// ── Request / Response types ────────────────────────────────────────────────

type AttemptResponse struct {
	ID               string  `json:"id"`
	TestID           string  `json:"test_id"`
	StartedAt        string  `json:"started_at"`
	CompletedAt      *string `json:"completed_at,omitempty"`
	TimeSpentSeconds int     `json:"time_spent_seconds"`
	Score            int     `json:"score"`
	BandScore        float64 `json:"band_score"`
	Status           string  `json:"status"`
}

type AnswerDetailResponse struct {
	QuestionID     string `json:"question_id"`
	QuestionNumber int    `json:"question_number"`
	QuestionType   string `json:"question_type"`
	QuestionText   string `json:"question_text"`
	CorrectAnswer  string `json:"correct_answer"`
	UserAnswer     string `json:"user_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

type ResultsResponse struct {
	Attempt        AttemptResponse        `json:"attempt"`
	TestTitle      string                 `json:"test_title"`
	TotalQuestions int                    `json:"total_questions"`
	Answers        []AnswerDetailResponse `json:"answers"`
}

func attemptResponse(a *attempt.Attempt) AttemptResponse {
	resp := AttemptResponse{
		ID:               a.ID,
		TestID:           a.TestID,
		StartedAt:        a.StartedAt.Format(time.RFC3339),
		TimeSpentSeconds: a.TimeSpentSeconds,
		Score:            a.Score,
		BandScore:        a.BandScore,
		Status:           string(a.Status),
	}
	if a.CompletedAt != nil {
		str := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &str
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /attempts
func (h *Handler) listAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.store.ListAttemptsByUser(r.Context(), identityFrom(r).UserID)
	if err != nil {
		h.logger.Error("failed to list attempts", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load attempts")
		return
	}

	response := make([]AttemptResponse, len(attempts))
	for i, a := range attempts {
		response[i] = attemptResponse(a)
	}
	respondJSON(w, http.StatusOK, response)
}

// GET /attempts/{attemptID}
//
// The results view: the attempt with its per-question answers, correct
// answers included now that grading is done. Owner or admin only.
func (h *Handler) getAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attemptID := r.PathValue("attemptID")

	a, err := h.store.GetAttempt(ctx, attemptID)
	if h.handleStoreError(w, err, "attempt") {
		return
	}

	caller := identityFrom(r)
	if a.UserID != caller.UserID && caller.Role != user.RoleAdmin {
		respondError(w, http.StatusForbidden, "not your attempt")
		return
	}

	test, err := h.store.GetTest(ctx, a.TestID)
	if h.handleStoreError(w, err, "test") {
		return
	}

	details, err := h.store.ListAnswerDetails(ctx, attemptID)
	if err != nil {
		h.logger.Error("failed to load answers", "attempt_id", attemptID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load answers")
		return
	}

	answers := make([]AnswerDetailResponse, len(details))
	for i, d := range details {
		answers[i] = AnswerDetailResponse{
			QuestionID:     d.QuestionID,
			QuestionNumber: d.QuestionNumber,
			QuestionType:   d.QuestionType,
			QuestionText:   d.QuestionText,
			CorrectAnswer:  d.CorrectAnswer,
			UserAnswer:     d.UserAnswer,
			IsCorrect:      d.IsCorrect,
		}
	}

	respondJSON(w, http.StatusOK, ResultsResponse{
		Attempt:        attemptResponse(a),
		TestTitle:      test.Title,
		TotalQuestions: len(answers),
		Answers:        answers,
	})
}
