package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/api/validation"
)

func render(t *testing.T, fn func(c echo.Context) error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := fn(c); err != nil {
		t.Fatalf("render error: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestSuccess_NilDataIsEmptyObject(t *testing.T) {
	code, body := render(t, func(c echo.Context) error {
		return Success(c, http.StatusOK, "done", nil)
	})

	if code != http.StatusOK || body["success"] != true || body["message"] != "done" {
		t.Fatalf("unexpected envelope: %d %+v", code, body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok || len(data) != 0 {
		t.Fatalf("expected empty data object, got %#v", body["data"])
	}
	if _, ok := body["errors"]; ok {
		t.Fatalf("errors must be omitted on success")
	}
}

func TestFailure_EmptyData(t *testing.T) {
	code, body := render(t, func(c echo.Context) error {
		return Failure(c, http.StatusNotFound, "User with id 7 not found in the database")
	})

	if code != http.StatusNotFound || body["success"] != false {
		t.Fatalf("unexpected envelope: %d %+v", code, body)
	}
	if data, ok := body["data"].(map[string]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty data object, got %#v", body["data"])
	}
}

func TestValidationFailure_ListsErrors(t *testing.T) {
	code, body := render(t, func(c echo.Context) error {
		return ValidationFailure(c, []validation.Failure{
			{Field: "title", Message: "title is required"},
			{Field: "price", Message: "price must be a float"},
		})
	})

	if code != http.StatusBadRequest || body["message"] != "Validation errors" {
		t.Fatalf("unexpected envelope: %d %+v", code, body)
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected two errors, got %#v", body["errors"])
	}
	first := errs[0].(map[string]any)
	if first["field"] != "title" || first["message"] != "title is required" {
		t.Fatalf("unexpected first error: %+v", first)
	}
}
