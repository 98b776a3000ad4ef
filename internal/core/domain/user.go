package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ReservedAdminID is the bootstrap admin account created at startup.
// It is hidden from admin user listings.
const ReservedAdminID int64 = 1

// User models an account in the system. Every user carries exactly one role.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
