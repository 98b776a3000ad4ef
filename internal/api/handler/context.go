package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth
// middleware. Its presence proves the middleware ran; a missing user on a
// protected route is a wiring error and reads as 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}

// currentJTI extracts the id of the presenting token, set by the Auth
// middleware. Logout revokes exactly this token.
func currentJTI(c echo.Context) (string, error) {
	jti, _ := c.Get("jti").(string)
	if jti == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return jti, nil
}
