package category

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type CategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d CategoryDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(128)
	v.Field("description", d.Description).MaxLength(1024)
	return v.Validate()
}
