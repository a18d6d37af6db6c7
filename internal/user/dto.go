package user

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(128)
	v.Field("email", d.Email).Required().MaxLength(255)
	v.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	v.Field("role_id", d.RoleID).Required()
	return v.Validate()
}

type UpdateUserDTO struct {
	Name      *string `json:"name"`
	RoleID    *int64  `json:"role_id"`
	AvatarURL *string `json:"avatar_url"`
}

func (d UpdateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(128)
	}
	if d.RoleID != nil {
		v.Field("role_id", d.RoleID).Required()
	}
	return v.Validate()
}

type RoleDTO struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (d RoleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(128)
	v.Field("permissions", d.Permissions).Required()
	return v.Validate()
}
