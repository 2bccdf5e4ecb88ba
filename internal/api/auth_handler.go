package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// signUp registers a new account.
// @Summary      Sign up
// @Description  Create an account and receive a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "Credentials"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "email already registered"
// @Router       /auth/signup [post]
func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, token, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrEmailTaken) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Token: token,
		User: UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		},
	})
}

// signIn authenticates an existing account.
// @Summary      Sign in
// @Description  Exchange credentials for a bearer token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignInRequest  true  "Credentials"
// @Success      200   {object}  AuthResponse
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/signin [post]
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, token, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User: UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		},
	})
}

// me returns the authenticated caller's profile.
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(r.Context(), identityFrom(r).UserID)
	if h.handleStoreError(w, err, "user") {
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	})
}
