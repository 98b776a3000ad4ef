package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"

	"github.com/taskhive/task-system/internal/core/domain"
)

const reminderSubject = "Task Reminder"

var reminderTemplate = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Task Reminder</title>
</head>
<body>
    <p>Hello {{.OwnerName}},</p>

    <p>This is a reminder that the following task is due in 2 days:</p>

    <ul>
        <li><strong>Title:</strong> {{.Title}}</li>
        <li><strong>Description:</strong> {{.Description}}</li>
        <li><strong>Deadline:</strong> {{.Deadline}}</li>
    </ul>

    <p>Please ensure you complete it before the deadline.</p>

    <p>Regards,<br>Your Task Manager</p>
</body>
</html>`))

// Config captures the SMTP client settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends reminder email over SMTP.
type Mailer struct {
	client *mail.Client
	from   string
}

// NewMailer builds an SMTP-backed Mailer. Authentication is enabled only
// when a username is configured.
func NewMailer(cfg Config) (*Mailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From}, nil
}

// SendTaskReminder delivers a deadline reminder for the task to the owner's
// address.
func (m *Mailer) SendTaskReminder(ctx context.Context, to, ownerName string, task *domain.Task) error {
	var body bytes.Buffer
	err := reminderTemplate.Execute(&body, struct {
		OwnerName   string
		Title       string
		Description string
		Deadline    string
	}{
		OwnerName:   ownerName,
		Title:       task.Title,
		Description: task.Description,
		Deadline:    task.Deadline.Format("January 2, 2006"),
	})
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("reminder from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("reminder to: %w", err)
	}
	msg.Subject(reminderSubject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}
