package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-system/internal/api/metrics"
	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

const minRegisterPasswordLen = 8

// AuthService implements registration, login and logout. Issued tokens are
// JWTs whose jti is allowlisted in the token store, so each session can be
// revoked individually.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, tokens: tokens, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if len(in.Password) < minRegisterPasswordLen {
		return nil, domain.NewValidationError("password", "password must be at least 8 characters")
	}
	if in.Password != in.PasswordConfirmation {
		return nil, domain.NewValidationError("password", "password confirmation does not match")
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

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// A missing account reads the same as a bad password so the endpoint
		// does not leak which emails exist.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, jti, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	if err := s.tokens.Save(ctx, jti, user.ID, s.tokenTTL); err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, jti string) error {
	return s.tokens.Revoke(ctx, jti)
}

func (s *AuthService) generateToken(user *domain.User) (string, string, error) {
	jti := uuid.NewString()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(user.ID, 10),
		"jti": jti,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}
