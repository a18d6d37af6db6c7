package status

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type StatusDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d StatusDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(128)
	v.Field("description", d.Description).MaxLength(1024)
	return v.Validate()
}
