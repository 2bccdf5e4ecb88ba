package api

import "net/http"

// RegisterRoutes wires every handler onto the mux. Route access falls into
// three tiers: public (auth), authenticated (test taking, results), and
// admin (authoring, publishing, export/import).
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Auth
	mux.HandleFunc("POST /auth/signup", h.signUp)
	mux.HandleFunc("POST /auth/signin", h.signIn)
	mux.HandleFunc("GET /auth/me", h.requireAuth(h.me))

	// Tests
	mux.HandleFunc("GET /tests", h.requireAuth(h.listTests))
	mux.HandleFunc("GET /tests/{testID}", h.requireAuth(h.getTest))

	// Test sessions
	mux.HandleFunc("POST /tests/{testID}/attempts", h.requireAuth(h.beginAttempt))
	mux.HandleFunc("GET /sessions/{sessionID}", h.requireAuth(h.getSession))
	mux.HandleFunc("PUT /sessions/{sessionID}/answers", h.requireAuth(h.setAnswer))
	mux.HandleFunc("POST /sessions/{sessionID}/submit", h.requireAuth(h.submitSession))
	mux.HandleFunc("DELETE /sessions/{sessionID}", h.requireAuth(h.closeSession))

	// Results
	mux.HandleFunc("GET /attempts", h.requireAuth(h.listAttempts))
	mux.HandleFunc("GET /attempts/{attemptID}", h.requireAuth(h.getAttempt))

	// Admin authoring
	mux.HandleFunc("POST /admin/tests", h.requireAdmin(h.createTest))
	mux.HandleFunc("DELETE /admin/tests/{testID}", h.requireAdmin(h.deleteTest))
	mux.HandleFunc("PATCH /admin/tests/{testID}/publish", h.requireAdmin(h.publishTest))
	mux.HandleFunc("POST /admin/tests/{testID}/passages", h.requireAdmin(h.addPassage))
	mux.HandleFunc("POST /admin/passages/{passageID}/questions", h.requireAdmin(h.addQuestion))
	mux.HandleFunc("DELETE /admin/questions/{questionID}", h.requireAdmin(h.deleteQuestion))

	// Admin export / import
	mux.HandleFunc("GET /admin/export", h.requireAdmin(h.exportAll))
	mux.HandleFunc("POST /admin/import", h.requireAdmin(h.importAll))
}
