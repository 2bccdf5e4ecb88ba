package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/domain/user"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/service"
	"github.com/ajay-kumar2109/ielts-reading-simulator/internal/store"
)

// fakeUserStore implements service.UserStore keyed by email.
type fakeUserStore struct {
	users map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*user.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *user.User) error {
	if _, exists := f.users[u.Email]; exists {
		return store.ErrConflict
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func newAuthService(st service.UserStore) *service.AuthService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAuthService(st, "test-secret", time.Hour, logger)
}

const validPassword = "Str0ng!pass"

func TestSignUp_CreatesUserAndToken(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	u, token, err := svc.SignUp(context.Background(), "  Alice@Example.COM ", validPassword)
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.Role != user.RoleUser {
		t.Errorf("expected regular role, got %s", u.Role)
	}
	if u.PasswordHash == validPassword {
		t.Error("password stored in plain text")
	}
	if token == "" {
		t.Error("expected a token")
	}

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if identity.UserID != u.ID || identity.Role != user.RoleUser {
		t.Errorf("identity does not match user: %+v", identity)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	if _, _, err := svc.SignUp(context.Background(), "a@b.com", validPassword); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	_, _, err := svc.SignUp(context.Background(), "a@b.com", validPassword)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignUp_PasswordPolicy(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	weak := []string{
		"Sh0rt!",      // too short
		"alllower1!",  // no uppercase
		"ALLUPPER1!",  // no lowercase
		"NoDigits!!",  // no number
		"NoSpecial1a", // no special character
	}
	for _, pw := range weak {
		if _, _, err := svc.SignUp(context.Background(), "a@b.com", pw); err == nil {
			t.Errorf("password %q: expected policy rejection", pw)
		}
	}
}

func TestSignIn(t *testing.T) {
	st := newFakeUserStore()
	svc := newAuthService(st)

	if _, _, err := svc.SignUp(context.Background(), "a@b.com", validPassword); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, token, err := svc.SignIn(context.Background(), "a@b.com", validPassword); err != nil || token == "" {
		t.Errorf("expected successful login, got token=%q err=%v", token, err)
	}

	// Wrong password and unknown email return the same error.
	_, _, errPw := svc.SignIn(context.Background(), "a@b.com", "Wr0ng!pass")
	_, _, errEmail := svc.SignIn(context.Background(), "nobody@b.com", validPassword)
	if !errors.Is(errPw, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errPw)
	}
	if !errors.Is(errEmail, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errEmail)
	}
}

func TestVerifyToken_Invalid(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	// Token signed with a different secret fails verification.
	other := service.NewAuthService(newFakeUserStore(), "other-secret", time.Hour,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, token, err := other.SignUp(context.Background(), "a@b.com", validPassword)
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	st := newFakeUserStore()
	svc := service.NewAuthService(st, "test-secret", -time.Minute,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, token, err := svc.SignUp(context.Background(), "a@b.com", validPassword)
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, err := svc.VerifyToken(token); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
