package handler

type createUserRequest struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// updateUserRequest carries a partial update. An absent or empty password
// keeps the current one.
type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password *string `json:"password"`
}
