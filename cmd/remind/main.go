// Command remind runs the deadline reminder job once and exits. It is meant
// to be invoked daily by an external scheduler (cron).
package main

import (
	"context"
	"os"
	"time"

	"github.com/taskhive/task-system/internal/core/service"
	"github.com/taskhive/task-system/internal/infrastructure/config"
	mongodb "github.com/taskhive/task-system/internal/infrastructure/db/mongo"
	"github.com/taskhive/task-system/internal/infrastructure/mail"
	"github.com/taskhive/task-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error().Err(err).Msg("mongo connection failed")
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	mailer, err := mail.NewMailer(mail.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	})
	if err != nil {
		log.Error().Err(err).Msg("mailer setup failed")
		os.Exit(1)
	}

	reminders := service.NewReminderService(
		mongodb.NewTaskRepository(db),
		mongodb.NewUserRepository(db),
		mailer,
		log,
	)

	sent, err := reminders.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reminder job failed")
		os.Exit(1)
	}
	log.Info().Int("sent", sent).Msg("reminder job finished")
}
