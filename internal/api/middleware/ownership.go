package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/librarium/library-api/internal/api/response"
)

// RequireOwner only lets a caller act on the user record named by the path
// parameter param when it is their own. Must run after Auth.
func RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok {
				return response.Failure(c, http.StatusUnauthorized, "Missing or malformed authorization header")
			}
			if id.Subject != c.Param(param) {
				return response.Failure(c, http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
