package api

import (
	"net/http"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/user"
)

// ── Request / Response types ────────────────────────────────────────────────

type TestResponse struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	Difficulty       string  `json:"difficulty"`
	TimeLimitMinutes int     `json:"time_limit_minutes"`
	IsPublished      bool    `json:"is_published"`
	AttemptCount     int     `json:"attempt_count,omitempty"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listTests lists tests available to the caller. Regular users see published
// tests only; admins see everything, with per-test attempt counts for the
// dashboard table.
// @Summary      List tests
// @Tags         Tests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   TestResponse
// @Failure      500  {object}  map[string]string
// @Router       /tests [get]
func (h *Handler) listTests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isAdmin := identityFrom(r).Role == user.RoleAdmin

	tests, err := h.store.ListTests(ctx, !isAdmin)
	if err != nil {
		h.logger.Error("failed to list tests", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load tests")
		return
	}

	response := make([]TestResponse, len(tests))
	for i, t := range tests {
		response[i] = TestResponse{
			ID:               t.ID,
			Title:            t.Title,
			Description:      t.Description,
			Difficulty:       t.Difficulty,
			TimeLimitMinutes: t.TimeLimitMinutes,
			IsPublished:      t.IsPublished,
		}
		if isAdmin {
			count, _ := h.store.CountAttempts(ctx, t.ID)
			response[i].AttemptCount = count
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// getTest returns one test's metadata. Unpublished tests are hidden from
// regular users.
// @Summary      Get a test
// @Tags         Tests
// @Produce      json
// @Security     BearerAuth
// @Param        testID  path      string  true  "Test ID"
// @Success      200     {object}  TestResponse
// @Failure      404     {object}  map[string]string
// @Router       /tests/{testID} [get]
func (h *Handler) getTest(w http.ResponseWriter, r *http.Request) {
	testID := r.PathValue("testID")

	t, err := h.store.GetTest(r.Context(), testID)
	if h.handleStoreError(w, err, "test") {
		return
	}

	if !t.IsPublished && identityFrom(r).Role != user.RoleAdmin {
		respondError(w, http.StatusNotFound, "test not found")
		return
	}

	respondJSON(w, http.StatusOK, TestResponse{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		Difficulty:       t.Difficulty,
		TimeLimitMinutes: t.TimeLimitMinutes,
		IsPublished:      t.IsPublished,
	})
}
