package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Unauthorized"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "The provided credentials are incorrect."},
		{"revoked token", domain.ErrTokenRevoked, http.StatusUnauthorized, "Token is no longer valid"},
		{"user has tasks", domain.ErrUserHasTasks, http.StatusConflict, "Cannot delete user because they have assigned tasks."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := render(t, tt.err)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if body.Status != "fail" || body.Message != tt.message {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationErrorCarriesFields(t *testing.T) {
	rec, body := render(t, domain.NewValidationError("deadline", "deadline must be a valid date"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	fields, ok := body.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected field map as data, got %T", body.Data)
	}
	if fields["deadline"] != "deadline must be a valid date" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestHTTPErrorHandler_EmailTakenRendersAsValidation(t *testing.T) {
	rec, body := render(t, domain.ErrEmailTaken)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	fields, ok := body.Data.(map[string]any)
	if !ok || fields["email"] == "" {
		t.Fatalf("expected email field message, got %+v", body.Data)
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Message != "invalid payload" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestHTTPErrorHandler_UnknownErrorHidesDetails(t *testing.T) {
	rec, body := render(t, errors.New("mongo: socket closed"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Message)
	}
}
