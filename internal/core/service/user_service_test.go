package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

func newUserServiceFixture() (*UserService, *stubUserRepo, *stubTaskRepo, *stubPublisher) {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()
	publisher := &stubPublisher{}
	svc := NewUserService(users, tasks, publisher, zerolog.Nop())
	return svc, users, tasks, publisher
}

func seedAdmin(users *stubUserRepo) *domain.User {
	return users.seed(domain.User{ID: 2, Name: "Root", Email: "root@x.com", Role: domain.RoleAdmin})
}

func TestUserService_AdminOnlyOperations(t *testing.T) {
	svc, users, _, _ := newUserServiceFixture()
	regular := users.seed(domain.User{Name: "Bob", Email: "bob@x.com", Role: domain.RoleUser})

	if _, err := svc.ListUsers(context.Background(), regular); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("ListUsers: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetUser(context.Background(), regular, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("GetUser: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.CreateUser(context.Background(), regular, ports.CreateUserInput{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("CreateUser: expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), regular, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("DeleteUser: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.TaskAnalytics(context.Background(), regular); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("TaskAnalytics: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpcomingDeadlines(context.Background(), regular); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("UpcomingDeadlines: expected ErrForbidden, got %v", err)
	}
}

func TestUserService_ListUsers_ExcludesReservedAdminAndCountsTasks(t *testing.T) {
	svc, users, tasks, _ := newUserServiceFixture()
	users.seed(domain.User{ID: domain.ReservedAdminID, Name: "Admin", Email: "admin@admin.com", Role: domain.RoleAdmin})
	admin := seedAdmin(users)
	bob := users.seed(domain.User{Name: "Bob", Email: "bob@x.com", Role: domain.RoleUser})
	tasks.seed(domain.Task{UserID: bob.ID, Title: "a"})
	tasks.seed(domain.Task{UserID: bob.ID, Title: "b"})

	list, err := svc.ListUsers(context.Background(), admin)
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	for _, u := range list {
		if u.ID == domain.ReservedAdminID {
			t.Fatalf("reserved admin leaked into listing")
		}
		if u.ID == bob.ID && u.TasksCount != 2 {
			t.Fatalf("expected 2 tasks for bob, got %d", u.TasksCount)
		}
	}
}

func TestUserService_CreateUser_AlwaysRoleUser(t *testing.T) {
	svc, users, _, _ := newUserServiceFixture()
	admin := seedAdmin(users)

	user, err := svc.CreateUser(context.Background(), admin, ports.CreateUserInput{
		Name: "New", Email: "new@x.com", Password: "secret6",
	})
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %s", user.Role)
	}
}

func TestUserService_UpdateUser_NameChangePublishesEvent(t *testing.T) {
	svc, users, _, publisher := newUserServiceFixture()
	admin := seedAdmin(users)
	bob := users.seed(domain.User{Name: "Bob", Email: "bob@x.com", Role: domain.RoleUser})

	newName := "Rob"
	updated, err := svc.UpdateUser(context.Background(), admin, bob.ID, ports.UpdateUserInput{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if updated.Name != "Rob" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(publisher.events))
	}
	if publisher.events[0].userID != bob.ID || publisher.events[0].name != "Rob" {
		t.Fatalf("unexpected event: %+v", publisher.events[0])
	}

	// An update that omits the name publishes nothing.
	newEmail := "rob@x.com"
	if _, err := svc.UpdateUser(context.Background(), admin, bob.ID, ports.UpdateUserInput{Email: &newEmail}); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected no additional event, got %d", len(publisher.events))
	}
}

func TestUserService_UpdateUser_EmptyPasswordKeepsHash(t *testing.T) {
	svc, users, _, _ := newUserServiceFixture()
	admin := seedAdmin(users)

	hash, _ := bcrypt.GenerateFromPassword([]byte("original1"), bcrypt.DefaultCost)
	bob := users.seed(domain.User{Name: "Bob", Email: "bob@x.com", Role: domain.RoleUser, PasswordHash: string(hash)})

	empty := ""
	if _, err := svc.UpdateUser(context.Background(), admin, bob.ID, ports.UpdateUserInput{Password: &empty}); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	stored, _ := users.FindByID(context.Background(), bob.ID)
	if stored.PasswordHash != string(hash) {
		t.Fatalf("empty password must keep the existing hash")
	}

	newPass := "rotated1"
	if _, err := svc.UpdateUser(context.Background(), admin, bob.ID, ports.UpdateUserInput{Password: &newPass}); err != nil {
		t.Fatalf("UpdateUser returned error: %v", err)
	}
	stored, _ = users.FindByID(context.Background(), bob.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("rotated1")) != nil {
		t.Fatalf("non-empty password must be re-hashed")
	}
}

func TestUserService_DeleteUser_BlockedByOwnedTasks(t *testing.T) {
	svc, users, tasks, _ := newUserServiceFixture()
	admin := seedAdmin(users)
	bob := users.seed(domain.User{Name: "Bob", Email: "bob@x.com", Role: domain.RoleUser})
	task := tasks.seed(domain.Task{UserID: bob.ID, Title: "pending"})

	err := svc.DeleteUser(context.Background(), admin, bob.ID)
	if !errors.Is(err, domain.ErrUserHasTasks) {
		t.Fatalf("expected ErrUserHasTasks, got %v", err)
	}
	if _, err := users.FindByID(context.Background(), bob.ID); err != nil {
		t.Fatalf("user must be left unmodified: %v", err)
	}
	if _, err := tasks.FindByID(context.Background(), task.ID); err != nil {
		t.Fatalf("tasks must be left unmodified: %v", err)
	}

	if err := tasks.Delete(context.Background(), task.ID); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if err := svc.DeleteUser(context.Background(), admin, bob.ID); err != nil {
		t.Fatalf("delete without tasks failed: %v", err)
	}
}

func TestUserService_TaskAnalytics_TopTenBusiestFirst(t *testing.T) {
	svc, users, tasks, _ := newUserServiceFixture()
	admin := seedAdmin(users)

	for i := 0; i < 12; i++ {
		u := users.seed(domain.User{Name: "u", Email: "u@x.com", Role: domain.RoleUser, ID: int64(10 + i)})
		for j := 0; j <= i; j++ {
			tasks.seed(domain.Task{UserID: u.ID, Title: "t"})
		}
	}

	top, err := svc.TaskAnalytics(context.Background(), admin)
	if err != nil {
		t.Fatalf("TaskAnalytics returned error: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].TasksCount > top[i-1].TasksCount {
			t.Fatalf("not sorted by task count desc at %d", i)
		}
	}
	if top[0].TasksCount != 12 {
		t.Fatalf("expected busiest user with 12 tasks, got %d", top[0].TasksCount)
	}
}

func TestUserService_UpcomingDeadlines(t *testing.T) {
	svc, users, tasks, _ := newUserServiceFixture()
	admin := seedAdmin(users)
	bob := users.seed(domain.User{Name: "Bob", Email: "bob@x.com", Role: domain.RoleUser})

	now := time.Now().UTC()
	tasks.seed(domain.Task{UserID: bob.ID, Title: "soon", Deadline: now.Add(24 * time.Hour)})
	tasks.seed(domain.Task{UserID: bob.ID, Title: "later", Deadline: now.Add(72 * time.Hour)})
	tasks.seed(domain.Task{UserID: bob.ID, Title: "latest", Deadline: now.Add(96 * time.Hour)})
	tasks.seed(domain.Task{UserID: bob.ID, Title: "done", Deadline: now.Add(12 * time.Hour), IsCompleted: true})
	tasks.seed(domain.Task{UserID: admin.ID, Title: "admin's", Deadline: now.Add(6 * time.Hour)})

	global, err := svc.UpcomingDeadlines(context.Background(), admin)
	if err != nil {
		t.Fatalf("UpcomingDeadlines returned error: %v", err)
	}
	if len(global) != 4 || global[0].Title != "admin's" {
		t.Fatalf("unexpected global deadlines: %+v", global)
	}

	mine, err := svc.MyUpcomingDeadlines(context.Background(), bob)
	if err != nil {
		t.Fatalf("MyUpcomingDeadlines returned error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected own top 2, got %d", len(mine))
	}
	if mine[0].Title != "soon" || mine[1].Title != "later" {
		t.Fatalf("unexpected own deadlines: %+v", mine)
	}
}
