package domain

// CanAccessTask reports whether the actor may read or mutate the task.
// Admins may access any task; everyone else only their own.
func CanAccessTask(actor *User, task *Task) bool {
	if actor == nil || task == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == task.UserID
}

// RequireAdmin returns ErrForbidden unless the actor holds the admin role.
func RequireAdmin(actor *User) error {
	if actor == nil || !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
