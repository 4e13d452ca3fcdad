package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/api/metrics"
	"github.com/librarium/library-api/internal/api/response"
	"github.com/librarium/library-api/internal/api/validation"
	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

type BorrowerHandler struct {
	service ports.BorrowerService
	idem    idempotency
}

func NewBorrowerHandler(service ports.BorrowerService, store ports.IdempotencyStore, log zerolog.Logger) *BorrowerHandler {
	return &BorrowerHandler{service: service, idem: idempotency{store: store, log: log}}
}

type borrowerRequest struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	IssueDate   time.Time `json:"issueDate"`
	DueDate     time.Time `json:"dueDate"`
}

func toBorrowerInput(f validation.Fields) ports.BorrowerInput {
	return ports.BorrowerInput{
		FirstName:   f.String("firstName"),
		LastName:    f.String("lastName"),
		Email:       f.String("email"),
		PhoneNumber: f.String("phoneNumber"),
		IssueDate:   f.Time("issueDate"),
		DueDate:     f.Time("dueDate"),
	}
}

// List godoc
// @Summary      List borrowers
// @Tags         borrowers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]domain.Borrower}
// @Failure      404  {object}  response.Envelope
// @Router       /borrowers [get]
func (h *BorrowerHandler) List(c echo.Context) error {
	borrowers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(borrowers) == 0 {
		return response.Failure(c, http.StatusNotFound, "There is no borrowers in the database")
	}
	return response.Success(c, http.StatusOK, "Borrowers fetched successfully", borrowers)
}

// Get godoc
// @Summary      Get a borrower by id
// @Tags         borrowers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Borrower id"
// @Success      200  {object}  response.Envelope{data=domain.Borrower}
// @Failure      404  {object}  response.Envelope
// @Router       /borrowers/{id} [get]
func (h *BorrowerHandler) Get(c echo.Context) error {
	id := c.Param("id")
	borrower, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("Borrower with id %s not found in the database", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Borrower with id %s fetched successfully", id), borrower)
}

// Create godoc
// @Summary      Register a borrower
// @Tags         borrowers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Client retry key"
// @Param        body             body      borrowerRequest  true   "Borrower"
// @Success      201              {object}  response.Envelope{data=domain.Borrower}
// @Failure      400              {object}  response.Envelope
// @Failure      409              {object}  response.Envelope
// @Router       /borrowers [post]
func (h *BorrowerHandler) Create(c echo.Context) error {
	fields, ok, err := validRequest(c, validation.OpCreateBorrower)
	if !ok {
		return err
	}

	ctx := c.Request().Context()
	cl := h.idem.begin(ctx, domain.EntityBorrower, idempotencyKey(c))
	if cl.busy {
		return response.Failure(c, http.StatusConflict, msgIdempotencyInFlight)
	}
	if cl.replayID != "" {
		if borrower, err := h.service.Get(ctx, cl.replayID); err == nil {
			return response.Success(c, http.StatusOK, "Borrower already created", borrower)
		}
	}

	borrower, err := h.service.Create(ctx, toBorrowerInput(fields))
	if err != nil {
		h.idem.release(ctx, cl)
		return err
	}
	h.idem.complete(ctx, cl, borrower.ID)

	metrics.RecordsCreatedTotal.WithLabelValues(domain.EntityBorrower).Inc()
	return response.Success(c, http.StatusCreated, "Borrower created successfully", borrower)
}

// Delete godoc
// @Summary      Delete a borrower
// @Tags         borrowers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Borrower id"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /borrowers/{id} [delete]
func (h *BorrowerHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Failure(c, http.StatusNotFound, fmt.Sprintf("Borrower with id %s not found in the database", id))
		}
		return err
	}
	return response.Success(c, http.StatusOK, fmt.Sprintf("Borrower with id %s deleted successfully", id), nil)
}
