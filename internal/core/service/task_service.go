package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/api/metrics"
	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// TaskService implements task CRUD and completion on top of the repository.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

func (s *TaskService) ListTasks(ctx context.Context, owner *domain.User, filter ports.TaskFilter) ([]domain.Task, error) {
	return s.repo.FindByOwner(ctx, owner.ID, filter)
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateTask persists a new task owned by owner. The owner id always comes
// from the actor; any owner supplied by the caller is discarded upstream.
func (s *TaskService) CreateTask(ctx context.Context, owner *domain.User, in ports.CreateTaskInput) (*domain.Task, error) {
	now := time.Now().UTC()
	task := &domain.Task{
		UserID:      owner.ID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Priority:    in.Priority,
		Category:    in.Category,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", owner.ID).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(created.Priority)).Inc()
	s.log.Info().Int64("task_id", created.ID).Int64("user_id", owner.ID).Msg("task created")
	return created, nil
}

// UpdateTask applies the supplied fields to the task and persists it.
// Concurrent updates are last write wins.
func (s *TaskService) UpdateTask(ctx context.Context, task *domain.Task, in ports.UpdateTaskInput) (*domain.Task, error) {
	updated := *task
	if in.Title != nil {
		updated.Title = *in.Title
	}
	if in.Description != nil {
		updated.Description = *in.Description
	}
	if in.Deadline != nil {
		updated.Deadline = *in.Deadline
	}
	if in.Priority != nil {
		updated.Priority = *in.Priority
	}
	if in.Category != nil {
		updated.Category = *in.Category
	}
	if in.IsCompleted != nil {
		updated.IsCompleted = *in.IsCompleted
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, task *domain.Task) error {
	if err := s.repo.Delete(ctx, task.ID); err != nil {
		return err
	}
	s.log.Info().Int64("task_id", task.ID).Msg("task deleted")
	return nil
}

// CompleteTask marks the task completed. Re-completing an already completed
// task is a no-op success.
func (s *TaskService) CompleteTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task.IsCompleted {
		return task, nil
	}

	updated := *task
	updated.IsCompleted = true
	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	metrics.TasksCompletedTotal.Inc()
	return &updated, nil
}
