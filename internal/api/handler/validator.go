package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/api/metrics"
	"github.com/librarium/library-api/internal/api/response"
	"github.com/librarium/library-api/internal/api/validation"
)

// bindFields decodes the JSON body into a field set. An empty body yields an
// empty set so that every required field is reported.
func bindFields(c echo.Context) (validation.Fields, error) {
	var fields validation.Fields
	if err := (&echo.DefaultBinder{}).BindBody(c, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = validation.Fields{}
	}
	return fields, nil
}

// validRequest decodes and validates the body against op. When ok is false the
// 400 response has already been written and err is the result of writing it.
func validRequest(c echo.Context, op validation.Operation) (fields validation.Fields, ok bool, err error) {
	fields, err = bindFields(c)
	if err != nil {
		return nil, false, response.Failure(c, http.StatusBadRequest, "invalid payload")
	}

	if failures := validation.Validate(op, fields); len(failures) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(op.String()).Inc()
		return nil, false, response.ValidationFailure(c, failures)
	}
	return fields, true, nil
}
