package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
)

// envelope is the canonical response shape rendered on every API failure.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders validation failures with the field map as the envelope data.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, data := resolveError(err, log, c)
		_ = c.JSON(code, envelope{Status: "fail", Data: data, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	// Validation failures carry field-level messages.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, "Validation error", ve.Fields
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found", nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Unauthorized", nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "The provided credentials are incorrect.", nil
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token is no longer valid", nil
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusUnprocessableEntity, "Validation error",
			map[string]string{"email": "the email has already been taken"}
	case errors.Is(err, domain.ErrUserHasTasks):
		// Deliberately a conflict, not a server fault: the request was
		// well-formed but collides with existing relations.
		return http.StatusConflict, "Cannot delete user because they have assigned tasks.", nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}
