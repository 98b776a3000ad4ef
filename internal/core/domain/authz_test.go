package domain

import "testing"

func TestCanAccessTask(t *testing.T) {
	admin := &User{ID: 1, Role: RoleAdmin}
	owner := &User{ID: 2, Role: RoleUser}
	other := &User{ID: 3, Role: RoleUser}
	task := &Task{ID: 10, UserID: 2}

	tests := []struct {
		name  string
		actor *User
		task  *Task
		want  bool
	}{
		{"admin accesses any task", admin, task, true},
		{"owner accesses own task", owner, task, true},
		{"other user denied", other, task, false},
		{"nil actor denied", nil, task, false},
		{"nil task denied", owner, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessTask(tt.actor, tt.task); got != tt.want {
				t.Fatalf("CanAccessTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(&User{Role: RoleAdmin}); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if err := RequireAdmin(&User{Role: RoleUser}); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireAdmin(nil); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for nil actor, got %v", err)
	}
}
