package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("find user: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{fmt.Errorf("insert book: %w", domain.ErrConflict), http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"), http.StatusRequestEntityTooLarge},
		{errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
		rec := httptest.NewRecorder()
		h(tc.err, e.NewContext(req, rec))

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var env map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if env["success"] != false {
			t.Fatalf("%v: expected failure envelope, got %+v", tc.err, env)
		}
	}
}

func TestHTTPErrorHandler_HidesInternalDetail(t *testing.T) {
	h := NewHTTPErrorHandler(zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h(errors.New("pq: password authentication failed"), echo.New().NewContext(req, rec))

	var env map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env["message"] != "internal server error" {
		t.Fatalf("unexpected message: %v", env["message"])
	}
}
