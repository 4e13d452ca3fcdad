package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/api/metrics"
	"github.com/librarium/library-api/internal/api/response"
	"github.com/librarium/library-api/internal/api/validation"
	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type BookHandler struct {
	service ports.BookService
	idem    idempotency
}

func NewBookHandler(service ports.BookService, store ports.IdempotencyStore, log zerolog.Logger) *BookHandler {
	return &BookHandler{service: service, idem: idempotency{store: store, log: log}}
}

type bookRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	Price       float64 `json:"price"`
	Status      bool    `json:"status"`
	AuthorID    string  `json:"AuthorId"`
}

func toBookInput(f validation.Fields) ports.BookInput {
	return ports.BookInput{
		Title:       f.String("title"),
		Description: f.String("description"),
		Author:      f.String("author"),
		ISBN:        f.String("isbn"),
		Price:       f.Float("price"),
		Status:      f.Bool("status"),
		AuthorID:    f.String("AuthorId"),
	}
}

// List godoc
// @Summary      List books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]domain.Book}
// @Failure      404  {object}  response.Envelope
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return response.Failure(c, http.StatusNotFound, "There is no books in the database")
	}
	return response.Success(c, http.StatusOK, "Books fetched successfully", books)
}

// Get godoc
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  response.Envelope{data=domain.Book}
// @Failure      404  {object}  response.Envelope
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id := c.Param("id")
	book, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("Book with id %s not found in the database", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Book with id %s fetched successfully", id), book)
}

// Create godoc
// @Summary      Create a book
// @Description  Repeating the request with the same Idempotency-Key returns the book created the first time.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Client retry key"
// @Param        body             body      bookRequest  true   "Book"
// @Success      201              {object}  response.Envelope{data=domain.Book}
// @Success      200              {object}  response.Envelope{data=domain.Book}
// @Failure      400              {object}  response.Envelope
// @Failure      409              {object}  response.Envelope
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpCreateBook)
	if !ok {
		return err
	}

	ctx := c.Request().Context()
	cl := h.idem.begin(ctx, domain.EntityBook, idempotencyKey(c))
	if cl.busy {
		return response.Failure(c, http.StatusConflict, msgIdempotencyInFlight)
	}
	if cl.replayID != "" {
		if book, err := h.service.Get(ctx, cl.replayID); err == nil {
			return response.Success(c, http.StatusOK, "Book already created", book)
		}
	}

	book, err := h.service.Create(ctx, toBookInput(fields))
	if err != nil {
		h.idem.release(ctx, cl)
		return err
	}
	h.idem.complete(ctx, cl, book.ID)

	metrics.RecordsCreatedTotal.WithLabelValues(domain.EntityBook).Inc()
	return response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// Update godoc
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "Book"
// @Success      200   {object}  response.Envelope{data=domain.Book}
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpUpdateBook)
	if !ok {
		return err
	}

	id := c.Param("id")
	book, err := h.service.Update(c.Request().Context(), id, toBookInput(fields))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("Book with id %s not found in the database", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Book with id %s updated successfully", id), book)
}

// Delete godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("Book with id %s not found in the database", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Book with id %s deleted successfully", id), nil)
}
