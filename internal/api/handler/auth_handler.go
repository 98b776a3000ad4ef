package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/ports"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new account with the "user" role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, nil, "Registration success, now you can login")
}

// Login authenticates a user and issues a fresh bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, loginResponse{
		Token: token,
		User: userSummary{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Roles: []string{user.Role},
		},
	}, "Login successful")
}

// Logout revokes the presenting token. Other sessions of the same user stay
// valid.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	jti, err := currentJTI(c)
	if err != nil {
		return err
	}

	if err := h.service.Logout(c.Request().Context(), jti); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Logged out successfully.")
}
