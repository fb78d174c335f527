package session

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MinPasswordLength mirrors the backend rule so obviously bad
// credentials never leave the client.
const MinPasswordLength = 6

// SignInRequest payload. Role is part of the login request: the same
// email may back both a student and a teacher account, and the backend
// treats them as distinct identities.
type SignInRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     Role   `form:"role" json:"role"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(MinPasswordLength, 0),
		),
		validation.Field(
			&r.Role,
			validation.Required,
			validation.In(RoleStudent, RoleTeacher),
		),
	)
}

// SignUpRequest payload
type SignUpRequest struct {
	Username string `form:"userName" json:"userName"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     Role   `form:"role" json:"role"`
}

// Validate will run validation rules
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(3, 0),
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(MinPasswordLength, 0),
		),
		validation.Field(
			&r.Role,
			validation.Required,
			validation.In(RoleStudent, RoleTeacher),
		),
	)
}

// DeleteAccountRequest carries the confirmation for account removal.
type DeleteAccountRequest struct {
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r DeleteAccountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}
