package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/api/metrics"
	"github.com/taskhive/task-system/internal/core/ports"
)

const reminderLeadDays = 2

// ReminderService sends one email per incomplete task due in two days.
// It is invoked once per run by an external scheduler; running it twice on
// the same day sends the reminders twice, as there is no sent flag.
type ReminderService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewReminderService(tasks ports.TaskRepository, users ports.UserRepository, mailer ports.Mailer, log zerolog.Logger) *ReminderService {
	return &ReminderService{tasks: tasks, users: users, mailer: mailer, log: log}
}

// Run scans for incomplete tasks due on today+2 and emails each owner that
// has an address on file. Returns the number of reminders sent. Per-task
// failures are logged and skipped; they never abort the remaining sends.
func (s *ReminderService) Run(ctx context.Context) (int, error) {
	target := startOfDay(time.Now().UTC().AddDate(0, 0, reminderLeadDays))

	due, err := s.tasks.FindDueOn(ctx, target)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		task := &due[i]

		owner, err := s.users.FindByID(ctx, task.UserID)
		if err != nil {
			s.log.Warn().Err(err).Int64("task_id", task.ID).Msg("reminder skipped, owner lookup failed")
			metrics.RemindersFailedTotal.Inc()
			continue
		}
		if owner.Email == "" {
			continue
		}

		if err := s.mailer.SendTaskReminder(ctx, owner.Email, owner.Name, task); err != nil {
			s.log.Warn().Err(err).Int64("task_id", task.ID).Str("to", owner.Email).Msg("reminder send failed")
			metrics.RemindersFailedTotal.Inc()
			continue
		}

		metrics.RemindersSentTotal.Inc()
		s.log.Info().Int64("task_id", task.ID).Str("to", owner.Email).Msg("reminder sent")
		sent++
	}

	return sent, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
