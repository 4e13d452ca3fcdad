package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/core/auth"
	"github.com/librarium/library-api/internal/core/domain"
)

func runAuth(t *testing.T, header string, verifier *auth.TokenManager, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(verifier)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotReach(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected failure envelope, got %+v", body)
	}
	msg, _ := body["message"].(string)
	return msg
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	signed, _, err := tokens.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	called := false
	rec := runAuth(t, "Bearer "+signed, tokens, func(c echo.Context) error {
		called = true
		id, ok := CurrentIdentity(c)
		if !ok || id.Subject != "user-1" || id.Email != "alice@example.com" {
			t.Fatalf("identity not set on echo context: %+v", id)
		}
		fromCtx, ok := domain.IdentityFrom(c.Request().Context())
		if !ok || fromCtx.Subject != "user-1" {
			t.Fatalf("identity not set on request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec := runAuth(t, "", auth.NewTokenManager("secret", time.Hour), mustNotReach(t))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := messageOf(t, rec); msg != "Missing or malformed authorization header" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer    ", "abc"} {
		rec := runAuth(t, header, auth.NewTokenManager("secret", time.Hour), mustNotReach(t))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
		if msg := messageOf(t, rec); msg != "Missing or malformed authorization header" {
			t.Fatalf("header %q: unexpected message %q", header, msg)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec := runAuth(t, "Bearer not-a-token", auth.NewTokenManager("secret", time.Hour), mustNotReach(t))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := messageOf(t, rec); msg != "Invalid or expired token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	rec := runAuth(t, "Bearer "+token, auth.NewTokenManager("secret", time.Hour), mustNotReach(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer := auth.NewTokenManager("secret", time.Hour, auth.WithClock(func() time.Time { return issuedAt }))
	token, _, err := issuer.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec := runAuth(t, "Bearer "+token, auth.NewTokenManager("secret", time.Hour), mustNotReach(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := messageOf(t, rec); msg != "Invalid or expired token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
