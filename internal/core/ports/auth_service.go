package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// RegisterInput carries the self-registration fields.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// AuthService implements registration, login and logout.
type AuthService interface {
	// Register creates a new account with the "user" role. It does not log
	// the user in; a separate Login call is required.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and issues a fresh bearer token. A missing
	// account and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes exactly the token identified by jti.
	Logout(ctx context.Context, jti string) error
}
