package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

const (
	analyticsLimit        = 10
	upcomingLimit         = 10
	myUpcomingLimit       = 2
	minManagedPasswordLen = 6
)

// UserService implements admin user management, self-service profile editing
// and task analytics.
type UserService struct {
	users     ports.UserRepository
	tasks     ports.TaskRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewUserService(users ports.UserRepository, tasks ports.TaskRepository, publisher ports.EventPublisher, log zerolog.Logger) *UserService {
	return &UserService{users: users, tasks: tasks, publisher: publisher, log: log}
}

// ListUsers returns every account except the reserved bootstrap admin,
// annotated with owned task counts.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]ports.UserSummary, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.tasks.CountsByOwner(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.UserSummary{User: u, TasksCount: counts[u.ID]})
	}
	return summaries, nil
}

func (s *UserService) GetUser(ctx context.Context, actor *domain.User, id int64) (*ports.UserDetail, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindByOwner(ctx, user.ID, ports.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return &ports.UserDetail{User: *user, Tasks: tasks}, nil
}

func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if len(in.Password) < minManagedPasswordLen {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.NewValidationError("email", "the email has already been taken")
		}
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Int64("actor_id", actor.ID).Msg("user created")
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actor *domain.User, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, nameChanged, err := s.applyUpdate(ctx, target, in)
	if err != nil {
		return nil, err
	}

	if nameChanged {
		if pubErr := s.publisher.PublishNameChanged(ctx, updated.ID, updated.Name); pubErr != nil {
			s.log.Warn().Err(pubErr).Int64("user_id", updated.ID).Msg("failed to publish name change")
		}
	}
	return updated, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, in ports.UpdateUserInput) (*domain.User, error) {
	// Re-read the actor so a stale context record cannot clobber newer data.
	target, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	updated, _, err := s.applyUpdate(ctx, target, in)
	return updated, err
}

// applyUpdate applies the supplied fields and persists the record. A supplied
// empty password leaves the current hash untouched; a non-empty one is
// re-hashed. Reports whether the name field was supplied.
func (s *UserService) applyUpdate(ctx context.Context, target *domain.User, in ports.UpdateUserInput) (*domain.User, bool, error) {
	updated := *target
	nameChanged := false

	if in.Name != nil {
		updated.Name = *in.Name
		nameChanged = true
	}
	if in.Email != nil {
		updated.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < minManagedPasswordLen {
			return nil, false, domain.NewValidationError("password", "password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, err
		}
		updated.PasswordHash = string(hash)
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, false, domain.NewValidationError("email", "the email has already been taken")
		}
		return nil, false, err
	}
	return &updated, nameChanged, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, id int64) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	owned, err := s.tasks.FindByOwner(ctx, target.ID, ports.TaskFilter{})
	if err != nil {
		return err
	}
	if len(owned) > 0 {
		return domain.ErrUserHasTasks
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", target.ID).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// TaskAnalytics returns the top users by owned task count, busiest first.
func (s *UserService) TaskAnalytics(ctx context.Context, actor *domain.User) ([]ports.UserSummary, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.tasks.CountsByOwner(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.UserSummary{User: u, TasksCount: counts[u.ID]})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TasksCount > summaries[j].TasksCount
	})
	if len(summaries) > analyticsLimit {
		summaries = summaries[:analyticsLimit]
	}
	return summaries, nil
}

func (s *UserService) UpcomingDeadlines(ctx context.Context, actor *domain.User) ([]domain.Task, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.tasks.FindUpcoming(ctx, 0, time.Now().UTC(), upcomingLimit)
}

func (s *UserService) MyUpcomingDeadlines(ctx context.Context, actor *domain.User) ([]domain.Task, error) {
	return s.tasks.FindUpcoming(ctx, actor.ID, time.Now().UTC(), myUpcomingLimit)
}
