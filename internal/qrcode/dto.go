package qrcode

import (
	"fmt"

	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type CreateQRCodeDTO struct {
	ProductID      int64    `json:"product_id"`
	Name           string   `json:"name"`
	Details        []string `json:"details"`
	ViewPermission int64    `json:"view_permission"`
}

func (d CreateQRCodeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("product_id", d.ProductID).Required()
	v.Field("name", d.Name).Required().MaxLength(255)
	if err := v.Validate(); err != nil {
		return err
	}

	allowed := make(map[string]struct{}, len(ScanFields))
	for _, f := range ScanFields {
		allowed[f] = struct{}{}
	}
	for _, f := range d.Details {
		if _, ok := allowed[f]; !ok {
			return errors.NewValidationFieldError("details",
				fmt.Sprintf("unknown detail field %q", f), errors.ErrCodeValidationFailed)
		}
	}
	return nil
}
