package tenant

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type UpdateTenantDTO struct {
	BrandName   *string `json:"brandName"`
	LogoURL     *string `json:"logoUrl"`
	ThemeColor  *string `json:"themeColor"`
	Description *string `json:"description"`
	RedirectURL *string `json:"redirectUrl"`
}

func (d UpdateTenantDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.BrandName != nil {
		v.Field("brandName", *d.BrandName).Required().MaxLength(128)
	}
	if d.ThemeColor != nil {
		v.Field("themeColor", *d.ThemeColor).MaxLength(32)
	}
	return v.Validate()
}
