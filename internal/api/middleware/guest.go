package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GuestOnly rejects requests that present a bearer token. Login and register
// are guest endpoints; an already-authenticated caller gets a 400. The
// literal "null" token some clients send for logged-out sessions counts as
// absent.
func GuestOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok && token != "" && token != "null" {
				return echo.NewHTTPError(http.StatusBadRequest,
					"You are already authenticated, registration or login is not allowed.")
			}
			return next(c)
		}
	}
}
