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

type AuthorHandler struct {
	service ports.AuthorService
	idem    idempotency
}

func NewAuthorHandler(service ports.AuthorService, store ports.IdempotencyStore, log zerolog.Logger) *AuthorHandler {
	return &AuthorHandler{service: service, idem: idempotency{store: store, log: log}}
}

type authorRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func toAuthorInput(f validation.Fields) ports.AuthorInput {
	return ports.AuthorInput{
		FirstName:   f.String("firstName"),
		LastName:    f.String("lastName"),
		Email:       f.String("email"),
		PhoneNumber: f.String("phoneNumber"),
	}
}

func authorNotFound(c echo.Context, id string) error {
	return response.Failure(c, http.StatusNotFound, fmt.Sprintf("Author with id %s not found in the database", id))
}

// List godoc
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]domain.Author}
// @Failure      404  {object}  response.Envelope
// @Router       /authors [get]
func (h *AuthorHandler) List(c echo.Context) error {
	authors, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(authors) == 0 {
		return response.Failure(c, http.StatusNotFound, "There is no authors in the database")
	}
	return response.Success(c, http.StatusOK, "Authors fetched successfully", authors)
}

// Get godoc
// @Summary      Get an author by id
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Author id"
// @Success      200  {object}  response.Envelope{data=domain.Author}
// @Failure      404  {object}  response.Envelope
// @Router       /authors/{id} [get]
func (h *AuthorHandler) Get(c echo.Context) error {
	id := c.Param("id")
	author, err := h.service.Get(c.Request().Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return authorNotFound(c, id)
	}
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Author with id %s fetched successfully", id), author)
}

// Create godoc
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string         false  "Client retry key"
// @Param        body             body      authorRequest  true   "Author"
// @Success      201              {object}  response.Envelope{data=domain.Author}
// @Failure      400              {object}  response.Envelope
// @Failure      409              {object}  response.Envelope
// @Router       /authors [post]
func (h *AuthorHandler) Create(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpCreateAuthor)
	if !ok {
		return err
	}

	ctx := c.Request().Context()
	cl := h.idem.begin(ctx, domain.EntityAuthor, idempotencyKey(c))
	if cl.busy {
		return response.Failure(c, http.StatusConflict, msgIdempotencyInFlight)
	}
	if cl.replayID != "" {
		if author, err := h.service.Get(ctx, cl.replayID); err == nil {
			return response.Success(c, http.StatusOK, "Author already created", author)
		}
	}

	author, err := h.service.Create(ctx, toAuthorInput(fields))
	if err != nil {
		h.idem.release(ctx, cl)
		return err
	}
	h.idem.complete(ctx, cl, author.ID)

	metrics.RecordsCreatedTotal.WithLabelValues(domain.EntityAuthor).Inc()
	return response.Success(c, http.StatusCreated, "Author created successfully", author)
}

// Update godoc
// @Summary      Replace an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Author id"
// @Param        body  body      authorRequest  true  "Author"
// @Success      200   {object}  response.Envelope{data=domain.Author}
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Router       /authors/{id} [put]
func (h *AuthorHandler) Update(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpUpdateAuthor)
	if !ok {
		return err
	}

	id := c.Param("id")
	author, err := h.service.Update(c.Request().Context(), id, toAuthorInput(fields))
	if errors.Is(err, domain.ErrNotFound) {
		return authorNotFound(c, id)
	}
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Author with id %s updated successfully", id), author)
}

// Delete godoc
// @Summary      Delete an author
// @Tags         authors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Author id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	err := h.service.Delete(c.Request().Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return authorNotFound(c, id)
	}
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Author with id %s deleted successfully", id), nil)
}
