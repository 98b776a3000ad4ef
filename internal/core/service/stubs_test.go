package service

import (
	"context"
	"sort"
	"time"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	var users []domain.User
	for _, u := range r.users {
		if u.ID == domain.ReservedAdminID {
			continue
		}
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, existing := range r.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seed inserts a user directly, bypassing uniqueness checks.
func (r *stubUserRepo) seed(u domain.User) *domain.User {
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	r.users[u.ID] = cloneUser(&u)
	return cloneUser(&u)
}

type stubTaskRepo struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[int64]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	created := *task
	created.ID = r.nextID
	r.tasks[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

// FindByOwner applies the same filters and ordering the Mongo repo would use.
func (r *stubTaskRepo) FindByOwner(_ context.Context, ownerID int64, f ports.TaskFilter) ([]domain.Task, error) {
	matched := []domain.Task{}
	for _, t := range r.tasks {
		if t.UserID != ownerID {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		switch f.Status {
		case "completed":
			if !t.IsCompleted {
				continue
			}
		case "pending":
			if t.IsCompleted {
				continue
			}
		}
		matched = append(matched, *t)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) CountsByOwner(_ context.Context) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	for _, t := range r.tasks {
		counts[t.UserID]++
	}
	return counts, nil
}

func (r *stubTaskRepo) FindDueOn(_ context.Context, dayStart time.Time) ([]domain.Task, error) {
	dayEnd := dayStart.AddDate(0, 0, 1)
	var due []domain.Task
	for _, t := range r.tasks {
		if t.IsCompleted {
			continue
		}
		if t.Deadline.Before(dayStart) || !t.Deadline.Before(dayEnd) {
			continue
		}
		due = append(due, *t)
	}
	return due, nil
}

func (r *stubTaskRepo) FindUpcoming(_ context.Context, ownerID int64, now time.Time, limit int) ([]domain.Task, error) {
	var upcoming []domain.Task
	for _, t := range r.tasks {
		if t.IsCompleted || t.Deadline.Before(now) {
			continue
		}
		if ownerID != 0 && t.UserID != ownerID {
			continue
		}
		upcoming = append(upcoming, *t)
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Deadline.Before(upcoming[j].Deadline)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// seed inserts a task directly.
func (r *stubTaskRepo) seed(t domain.Task) *domain.Task {
	if t.ID == 0 {
		r.nextID++
		t.ID = r.nextID
	} else if t.ID > r.nextID {
		r.nextID = t.ID
	}
	clone := t
	r.tasks[t.ID] = &clone
	out := t
	return &out
}

type stubTokenStore struct {
	active map[string]int64
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{active: make(map[string]int64)}
}

func (s *stubTokenStore) Save(_ context.Context, jti string, userID int64, _ time.Duration) error {
	s.active[jti] = userID
	return nil
}

func (s *stubTokenStore) Exists(_ context.Context, jti string) (bool, error) {
	_, ok := s.active[jti]
	return ok, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.active, jti)
	return nil
}

type publishedEvent struct {
	userID int64
	name   string
}

type stubPublisher struct {
	events []publishedEvent
}

func (p *stubPublisher) PublishNameChanged(_ context.Context, userID int64, name string) error {
	p.events = append(p.events, publishedEvent{userID: userID, name: name})
	return nil
}

type sentMail struct {
	to     string
	taskID int64
}

type stubMailer struct {
	sent    []sentMail
	failFor map[string]error // per-address send failure
}

func (m *stubMailer) SendTaskReminder(_ context.Context, to, _ string, task *domain.Task) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{to: to, taskID: task.ID})
	return nil
}
