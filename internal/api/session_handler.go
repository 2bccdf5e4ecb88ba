package api

import (
	"errors"
	"net/http"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/session"
)

// ── Request / Response types ────────────────────────────────────────────────

type SessionQuestion struct {
	ID             string   `json:"id"`
	PassageID      string   `json:"passage_id"`
	QuestionNumber int      `json:"question_number"`
	Type           string   `json:"type"`
	Text           string   `json:"text"`
	Options        []string `json:"options,omitempty"`
}

type SessionPassage struct {
	ID            string  `json:"id"`
	PassageNumber int     `json:"passage_number"`
	Title         *string `json:"title,omitempty"`
	Content       string  `json:"content"`
}

type SessionResponse struct {
	ID               string            `json:"id"`
	State            string            `json:"state"`
	TestID           string            `json:"test_id"`
	Title            string            `json:"title"`
	TimeLimitMinutes int               `json:"time_limit_minutes"`
	RemainingSeconds int               `json:"remaining_seconds"`
	Urgent           bool              `json:"urgent"`
	Passages         []SessionPassage  `json:"passages"`
	Questions        []SessionQuestion `json:"questions"`
	Answers          map[string]string `json:"answers"`
	AttemptID        string            `json:"attempt_id,omitempty"`
	Error            string            `json:"error,omitempty"`
}

type RedirectResponse struct {
	AlreadyCompleted bool   `json:"already_completed"`
	AttemptID        string `json:"attempt_id"`
}

type SetAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type SubmitResponse struct {
	AttemptID string `json:"attempt_id"`
}

func sessionResponse(s *session.Session) SessionResponse {
	test := s.Test()

	passages := make([]SessionPassage, 0, len(s.Passages()))
	for _, p := range s.Passages() {
		passages = append(passages, SessionPassage{
			ID:            p.ID,
			PassageNumber: p.PassageNumber,
			Title:         p.Title,
			Content:       p.Content,
		})
	}

	// Correct answers stay server-side; the client only ever sees them on
	// the results view, after grading.
	questions := make([]SessionQuestion, 0, len(s.Questions()))
	for _, q := range s.Questions() {
		options := q.Options
		if fixed := q.Type.FixedOptions(); fixed != nil {
			options = fixed
		}
		questions = append(questions, SessionQuestion{
			ID:             q.ID,
			PassageID:      q.PassageID,
			QuestionNumber: q.QuestionNumber,
			Type:           string(q.Type),
			Text:           q.Text,
			Options:        options,
		})
	}

	resp := SessionResponse{
		ID:               s.ID,
		State:            string(s.State()),
		TestID:           s.TestID,
		Title:            test.Title,
		TimeLimitMinutes: test.TimeLimitMinutes,
		RemainingSeconds: s.Remaining(),
		Urgent:           s.Urgent(),
		Passages:         passages,
		Questions:        questions,
		Answers:          s.Answers(),
		AttemptID:        s.AttemptID(),
	}
	if err := s.Err(); err != nil {
		resp.Error = "submission failed, please try again"
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /tests/{testID}/attempts
func (h *Handler) beginAttempt(w http.ResponseWriter, r *http.Request) {
	testID := r.PathValue("testID")
	userID := identityFrom(r).UserID

	s, err := h.sessions.Begin(r.Context(), userID, testID)

	var done *session.AlreadyCompletedError
	if errors.As(err, &done) {
		// No-retake policy: point the client at the existing results.
		respondJSON(w, http.StatusOK, RedirectResponse{
			AlreadyCompleted: true,
			AttemptID:        done.AttemptID,
		})
		return
	}
	if errors.Is(err, session.ErrTestNotPublished) {
		respondError(w, http.StatusNotFound, "test not found")
		return
	}
	if h.handleStoreError(w, err, "test") {
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse(s))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("sessionID"))
	if errors.Is(err, session.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if s.UserID != identityFrom(r).UserID {
		respondError(w, http.StatusForbidden, "not your session")
		return
	}

	respondJSON(w, http.StatusOK, sessionResponse(s))
}

// PUT /sessions/{sessionID}/answers
func (h *Handler) setAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	s, err := h.sessions.Get(sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if s.UserID != identityFrom(r).UserID {
		respondError(w, http.StatusForbidden, "not your session")
		return
	}

	var req SetAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch err := h.sessions.SetAnswer(sessionID, req.QuestionID, req.Answer); {
	case errors.Is(err, session.ErrUnknownQuestion):
		respondError(w, http.StatusNotFound, "question not found in session")
		return
	case errors.Is(err, session.ErrNotInProgress):
		respondError(w, http.StatusConflict, "session is no longer accepting answers")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{sessionID}/submit
func (h *Handler) submitSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	s, err := h.sessions.Get(sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if s.UserID != identityFrom(r).UserID {
		respondError(w, http.StatusForbidden, "not your session")
		return
	}

	attemptID, err := h.sessions.Submit(r.Context(), sessionID)
	if errors.Is(err, session.ErrSubmitInFlight) {
		// A concurrent submit (timer expiry, double click) is already
		// running; not an error.
		respondJSON(w, http.StatusAccepted, sessionResponse(s))
		return
	}
	if err != nil {
		h.logger.Error("submission failed", "session_id", sessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to submit test, please try again")
		return
	}

	respondJSON(w, http.StatusOK, SubmitResponse{AttemptID: attemptID})
}

// DELETE /sessions/{sessionID}
//
// Abandons an in-progress session: stops the countdown and forgets the
// collected answers. No attempt is recorded.
func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	s, err := h.sessions.Get(sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if s.UserID != identityFrom(r).UserID {
		respondError(w, http.StatusForbidden, "not your session")
		return
	}

	h.sessions.Close(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
