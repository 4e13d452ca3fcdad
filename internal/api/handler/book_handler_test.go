package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type stubBookService struct {
	books     map[string]*domain.Book
	created   int
	createErr error
}

func newStubBookService() *stubBookService {
	return &stubBookService{books: make(map[string]*domain.Book)}
}

func (s *stubBookService) Create(_ context.Context, in ports.BookInput) (*domain.Book, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created++
	b := &domain.Book{ID: fmt.Sprintf("book-%d", s.created), Title: in.Title, ISBN: in.ISBN, Price: in.Price, Status: in.Status, AuthorID: in.AuthorID}
	s.books[b.ID] = b
	return b, nil
}

func (s *stubBookService) Get(_ context.Context, id string) (*domain.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *stubBookService) List(context.Context) ([]*domain.Book, error) {
	out := []*domain.Book{}
	for _, b := range s.books {
		out = append(out, b)
	}
	return out, nil
}

func (s *stubBookService) Update(_ context.Context, id string, in ports.BookInput) (*domain.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Title = in.Title
	return b, nil
}

func (s *stubBookService) Delete(_ context.Context, id string) error {
	if _, ok := s.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.books, id)
	return nil
}

// mapIdempotencyStore holds pending reservations as empty ids.
type mapIdempotencyStore struct {
	ids        map[string]string
	reserveErr error
	released   int
}

func (m *mapIdempotencyStore) Reserve(_ context.Context, entity, key string) (string, bool, error) {
	if m.reserveErr != nil {
		return "", false, m.reserveErr
	}
	id, ok := m.ids[entity+":"+key]
	if ok {
		return id, false, nil
	}
	m.ids[entity+":"+key] = ""
	return "", true, nil
}

func (m *mapIdempotencyStore) Complete(_ context.Context, entity, key, id string) error {
	m.ids[entity+":"+key] = id
	return nil
}

func (m *mapIdempotencyStore) Release(_ context.Context, entity, key string) error {
	m.released++
	delete(m.ids, entity+":"+key)
	return nil
}

const validBookBody = `{"title":"Dune","description":"Desert planet","author":"Frank Herbert","isbn":"9780441013593","price":9.99,"status":true,"AuthorId":"a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"}`

func createBook(t *testing.T, h *BookHandler, key string) (int, map[string]any) {
	t.Helper()
	wrapped := func(c echo.Context) error {
		if key != "" {
			c.Request().Header.Set(HeaderIdempotencyKey, key)
		}
		return h.Create(c)
	}
	rec, resp := doJSON(t, http.MethodPost, "/api/v1/books", validBookBody, wrapped)
	return rec.Code, resp
}

// callCreateBook returns the handler error instead of failing, for paths the
// central error handler renders.
func callCreateBook(h *BookHandler, key string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", strings.NewReader(validBookBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(HeaderIdempotencyKey, key)
	rec := httptest.NewRecorder()
	return rec, h.Create(echo.New().NewContext(req, rec))
}

func TestBookHandler_Create(t *testing.T) {
	svc := newStubBookService()
	h := NewBookHandler(svc, nil, zerolog.Nop())

	code, resp := createBook(t, h, "")

	if code != http.StatusCreated || resp["message"] != "Book created successfully" {
		t.Fatalf("unexpected response: %d %+v", code, resp)
	}
	data := resp["data"].(map[string]any)
	if data["price"] != 9.99 || data["status"] != true {
		t.Fatalf("unexpected book: %+v", data)
	}
}

func TestBookHandler_Create_IdempotentReplay(t *testing.T) {
	svc := newStubBookService()
	store := &mapIdempotencyStore{ids: map[string]string{}}
	h := NewBookHandler(svc, store, zerolog.Nop())

	code, first := createBook(t, h, "retry-1")
	if code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}

	code, second := createBook(t, h, "retry-1")
	if code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", code)
	}
	if svc.created != 1 {
		t.Fatalf("expected one book created, got %d", svc.created)
	}
	firstID := first["data"].(map[string]any)["id"]
	secondID := second["data"].(map[string]any)["id"]
	if firstID != secondID {
		t.Fatalf("replay returned %v, want %v", secondID, firstID)
	}
}

func TestBookHandler_Create_KeyInFlight(t *testing.T) {
	svc := newStubBookService()
	store := &mapIdempotencyStore{ids: map[string]string{"book:retry-1": ""}}
	h := NewBookHandler(svc, store, zerolog.Nop())

	code, resp := createBook(t, h, "retry-1")
	if code != http.StatusConflict || resp["message"] != msgIdempotencyInFlight {
		t.Fatalf("expected 409 while the key is reserved, got %d %+v", code, resp)
	}
	if svc.created != 0 {
		t.Fatalf("expected no book created, got %d", svc.created)
	}
}

func TestBookHandler_Create_FailureReleasesKey(t *testing.T) {
	svc := newStubBookService()
	svc.createErr = domain.ErrConflict
	store := &mapIdempotencyStore{ids: map[string]string{}}
	h := NewBookHandler(svc, store, zerolog.Nop())

	if _, err := callCreateBook(h, "retry-1"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if store.released != 1 {
		t.Fatalf("expected the reservation to be released, released=%d", store.released)
	}

	svc.createErr = nil
	code, _ := createBook(t, h, "retry-1")
	if code != http.StatusCreated || svc.created != 1 {
		t.Fatalf("expected retry after failure to create, got %d created=%d", code, svc.created)
	}
}

func TestBookHandler_Create_StoreFailureStillCreates(t *testing.T) {
	svc := newStubBookService()
	store := &mapIdempotencyStore{ids: map[string]string{}, reserveErr: errors.New("redis down")}
	h := NewBookHandler(svc, store, zerolog.Nop())

	code, _ := createBook(t, h, "retry-1")
	if code != http.StatusCreated || svc.created != 1 {
		t.Fatalf("expected creation despite store failure, got %d created=%d", code, svc.created)
	}
}

func TestBookHandler_Create_ValidationErrors(t *testing.T) {
	h := NewBookHandler(newStubBookService(), nil, zerolog.Nop())

	rec, resp := doJSON(t, http.MethodPost, "/api/v1/books",
		`{"title":"Dune","description":"d","author":"a","isbn":"123","price":"cheap","status":"maybe","AuthorId":"nope"}`, h.Create)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	fields := map[string]bool{}
	for _, f := range resp["errors"].([]any) {
		fields[f.(map[string]any)["field"].(string)] = true
	}
	for _, want := range []string{"isbn", "price", "status", "AuthorId"} {
		if !fields[want] {
			t.Fatalf("expected failure for %s, got %+v", want, resp["errors"])
		}
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	h := NewBookHandler(newStubBookService(), nil, zerolog.Nop())

	rec, resp := doJSON(t, http.MethodGet, "/api/v1/books/missing", "", h.Get, "id", "missing")

	if rec.Code != http.StatusNotFound || resp["message"] != "Book with id missing not found in the database" {
		t.Fatalf("unexpected response: %d %+v", rec.Code, resp)
	}
}

func TestBookHandler_List_Empty(t *testing.T) {
	h := NewBookHandler(newStubBookService(), nil, zerolog.Nop())

	rec, _ := doJSON(t, http.MethodGet, "/api/v1/books", "", h.List)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
