package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/api/metrics"
	"github.com/librarium/library-api/internal/api/response"
	"github.com/librarium/library-api/internal/core/domain"
	"github.com/librarium/library-api/internal/core/ports"
)

// IdentityKey is the echo context key holding the caller's domain.Identity.
const IdentityKey = "identity"

// Authorize extracts the bearer token from the request and verifies it. It
// returns domain.ErrMissingCredentials when no usable token is present and
// the verifier's error otherwise.
func Authorize(r *http.Request, verifier ports.TokenVerifier) (domain.Identity, error) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return domain.Identity{}, domain.ErrMissingCredentials
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, domain.ErrMissingCredentials
	}
	return verifier.Verify(token)
}

// Auth rejects requests without a valid bearer token and attaches the
// verified identity to the echo context and the request context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Authorize(c.Request(), verifier)
			if err != nil {
				if errors.Is(err, domain.ErrMissingCredentials) {
					metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
					return response.Failure(c, http.StatusUnauthorized, "Missing or malformed authorization header")
				}
				result := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					result = "expired"
				}
				metrics.TokenVerificationsTotal.WithLabelValues(result).Inc()
				return response.Failure(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(IdentityKey, id)
			c.SetRequest(c.Request().WithContext(domain.WithIdentity(c.Request().Context(), id)))
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity attached by Auth.
func CurrentIdentity(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(IdentityKey).(domain.Identity)
	return id, ok
}
