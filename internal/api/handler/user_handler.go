package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// UserHandler handles admin user management, self-service profile editing and
// task analytics. Admin checks live in the service layer, which reads the
// actor's role fresh from the store on every request.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users (admin only). The reserved bootstrap admin is
// excluded from the listing.
//
// @Summary      List users with task counts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users, "Users retrieved successfully.")
}

// Show handles GET /api/users/:id (admin only), returning the user together
// with their tasks.
//
// @Summary      Get a user with their tasks
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) Show(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.GetUser(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, detail, "User retrieved successfully.")
}

// Create handles POST /api/users (admin only). The new account always gets
// the "user" role.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User fields"
// @Success      201   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), actor, ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, user, "User created successfully.")
}

// Update handles PUT /api/users/:id (admin only). A supplied name triggers a
// name-changed event after the update commits.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), actor, id, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "User updated successfully.")
}

// UpdateProfile handles PUT /api/profile, letting any authenticated user edit
// their own record.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor, ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user, "Profile updated successfully.")
}

// Delete handles DELETE /api/users/:id (admin only). Fails with a conflict
// when the target still owns tasks.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Failure      409  {object}  envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "User deleted successfully")
}

// TaskAnalytics handles GET /api/users/analytics/tasks (admin only): top 10
// users by owned task count.
//
// @Summary      Top users by task count
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/users/analytics/tasks [get]
func (h *UserHandler) TaskAnalytics(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	users, err := h.service.TaskAnalytics(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users, "Task analytics retrieved successfully.")
}

// UpcomingDeadlines handles GET /api/users/analytics/deadlines (admin only):
// the 10 incomplete tasks due soonest across all users.
//
// @Summary      Upcoming deadlines across all users
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/users/analytics/deadlines [get]
func (h *UserHandler) UpcomingDeadlines(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.UpcomingDeadlines(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks, "Top 10 upcoming incomplete tasks retrieved successfully.")
}

// MyUpcomingDeadlines handles GET /api/users/analytics/my-deadlines: the
// caller's own 2 incomplete tasks due soonest.
//
// @Summary      Own upcoming deadlines
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/users/analytics/my-deadlines [get]
func (h *UserHandler) MyUpcomingDeadlines(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.MyUpcomingDeadlines(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks, "Your upcoming tasks retrieved successfully.")
}

// userID resolves the :id parameter; a malformed id reads the same as a
// missing user.
func userID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}
	return id, nil
}
