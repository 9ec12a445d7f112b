package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookhaven/bookstore-api/internal/api/middleware"
	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

type stubAuthService struct {
	user      *domain.User
	token     string
	signinErr error
	signedOut []string
}

func (s *stubAuthService) Signup(_ context.Context, _ ports.SignupInput) (*domain.User, error) {
	return s.user, nil
}

func (s *stubAuthService) Signin(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.signinErr != nil {
		return "", nil, s.signinErr
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) Signout(_ context.Context, jti string, _ time.Time) error {
	s.signedOut = append(s.signedOut, jti)
	return nil
}

func (s *stubAuthService) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubAuthService) TokenTTL() time.Duration {
	return 2 * time.Hour
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Signin_SetsTokenCookie(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{token: "signed-token", user: &domain.User{ID: "u1", Email: "a@example.com"}}
	h := NewAuthHandler(svc, true)

	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(`{"email":"a@example.com","password":"pass123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Signin(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Signin failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var tokenCookie *http.Cookie
	for _, ck := range cookies {
		if ck.Name == "token" {
			tokenCookie = ck
		}
	}
	if tokenCookie == nil {
		t.Fatalf("token cookie not set")
	}
	if tokenCookie.Value != "signed-token" {
		t.Fatalf("unexpected cookie value %q", tokenCookie.Value)
	}
	if !tokenCookie.HttpOnly || !tokenCookie.Secure {
		t.Fatalf("token cookie must be HTTP-only and secure")
	}
	if tokenCookie.SameSite != http.SameSiteNoneMode {
		t.Fatalf("token cookie must allow cross-site requests")
	}
}

func TestAuthHandler_Signin_InvalidCredentials(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{signinErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, true)

	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(`{"email":"a@example.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Signin(e.NewContext(req, rec)); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to surface, got %v", err)
	}
}

func TestAuthHandler_Logout_Anonymous(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()

	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("anonymous logout must be a no-op, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(svc.signedOut) != 0 {
		t.Fatalf("no revocation expected for anonymous logout")
	}
}

func TestAuthHandler_Logout_RevokesAndClearsCookie(t *testing.T) {
	e := newEcho()
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "u1")
	c.Set(middleware.CtxTokenJTI, "jti_1")
	c.Set(middleware.CtxTokenExp, time.Now().Add(time.Hour))

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if len(svc.signedOut) != 1 || svc.signedOut[0] != "jti_1" {
		t.Fatalf("expected jti_1 to be revoked, got %v", svc.signedOut)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "token" && ck.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("token cookie not cleared")
	}
}

func TestAuthHandler_CurrentUser_AnonymousMarker(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, true)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	rec := httptest.NewRecorder()

	if err := h.CurrentUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"anonymous":true`) {
		t.Fatalf("expected anonymous marker, got %s", rec.Body.String())
	}
}
