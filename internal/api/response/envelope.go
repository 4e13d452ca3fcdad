// Package response builds the uniform JSON envelope returned by every endpoint.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/api/validation"
)

// Envelope is the canonical response body.
type Envelope struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Data    any                  `json:"data"`
	Errors  []validation.Failure `json:"errors,omitempty"`
}

// Empty is rendered as {} where no payload applies.
type Empty struct{}

func NewSuccess(message string, data any) Envelope {
	if data == nil {
		data = Empty{}
	}
	return Envelope{Success: true, Message: message, Data: data}
}

func NewFailure(message string, failures ...validation.Failure) Envelope {
	return Envelope{Success: false, Message: message, Data: Empty{}, Errors: failures}
}

// Success writes a success envelope with the given status.
func Success(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, NewSuccess(message, data))
}

// Failure writes a failure envelope with an empty data object.
func Failure(c echo.Context, status int, message string) error {
	return c.JSON(status, NewFailure(message))
}

// ValidationFailure writes the 400 response for a rejected request body.
func ValidationFailure(c echo.Context, failures []validation.Failure) error {
	return c.JSON(http.StatusBadRequest, NewFailure("Validation errors", failures...))
}
