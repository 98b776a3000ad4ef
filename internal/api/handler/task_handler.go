package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Item-scoped routes
// load the task first, then run the owner-or-admin guard before touching the
// service.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks. Filters come from query parameters and are
// conjunctive; the full filtered result set is returned.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category"
// @Param        priority  query     string  false  "Filter by priority (low|normal|high)"
// @Param        status    query     string  false  "Filter by status (completed|pending)"
// @Success      200       {object}  envelope
// @Failure      401       {object}  envelope
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), user, ports.TaskFilter{
		Category: c.QueryParam("category"),
		Priority: c.QueryParam("priority"),
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, tasks, "Tasks retrieved successfully")
}

// Create handles POST /api/tasks. The task is always owned by the caller,
// whatever the payload says.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task fields"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.Request().Context(), user, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    domain.TaskPriority(req.Priority),
		Category:    req.Category,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, task, "Task created successfully")
}

// Show handles GET /api/tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Show(c echo.Context) error {
	task, _, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task, "Task retrieved successfully")
}

// Update handles PUT /api/tasks/:id with partial update semantics.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	task, _, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IsCompleted: req.IsCompleted,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return err
		}
		in.Deadline = &deadline
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		in.Priority = &priority
	}

	updated, err := h.service.UpdateTask(c.Request().Context(), task, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated, "Task updated successfully")
}

// Delete handles DELETE /api/tasks/:id. Hard delete, no undo.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	task, _, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), task); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "Task deleted successfully")
}

// Complete handles PATCH /api/tasks/:id/complete. Idempotent; never
// un-completes.
//
// @Summary      Mark a task completed
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/tasks/{id}/complete [patch]
func (h *TaskHandler) Complete(c echo.Context) error {
	task, _, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}

	updated, err := h.service.CompleteTask(c.Request().Context(), task)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, updated, "Task marked as completed")
}

// loadAuthorized resolves the :id parameter, loads the task and enforces the
// owner-or-admin guard. A malformed id reads the same as a missing task.
func (h *TaskHandler) loadAuthorized(c echo.Context) (*domain.Task, *domain.User, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, nil, err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, nil, domain.ErrTaskNotFound
	}

	task, err := h.service.GetTask(c.Request().Context(), id)
	if err != nil {
		return nil, nil, err
	}

	if !domain.CanAccessTask(user, task) {
		return nil, nil, domain.ErrForbidden
	}
	return task, user, nil
}
