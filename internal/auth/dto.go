package auth

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type SignupDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d SignupDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required().MinLength(3).MaxLength(64)
	v.Field("email", d.Email).Required().MaxLength(255)
	v.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	return v.Validate()
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

type SignupResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
