package product

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type CreateProductDTO struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	CategoryID     *int64 `json:"category_id"`
	StatusID       *int64 `json:"status_id"`
	ManufacturerID int64  `json:"manufacturer_id"`
	CurrentOwnerID int64  `json:"current_owner_id"`
	ImageURL       string `json:"image_url"`
}

func (d CreateProductDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("manufacturer_id", d.ManufacturerID).Required()
	v.Field("current_owner_id", d.CurrentOwnerID).Required()
	return v.Validate()
}

type UpdateProductDTO struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	CategoryID     *int64  `json:"category_id"`
	StatusID       *int64  `json:"status_id"`
	CurrentOwnerID *int64  `json:"current_owner_id"`
	ImageURL       *string `json:"image_url"`
}

func (d UpdateProductDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	return v.Validate()
}

// BulkUpdateRequestDTO moves or relabels many products at once. Owner, status
// and category apply uniformly to every listed product.
type BulkUpdateRequestDTO struct {
	ProductIDs     []int64 `json:"product_ids"`
	CurrentOwnerID *int64  `json:"current_owner_id"`
	StatusID       *int64  `json:"status_id"`
	CategoryID     *int64  `json:"category_id"`
}

func (d BulkUpdateRequestDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("product_ids", d.ProductIDs).Required()
	if d.CurrentOwnerID == nil && d.StatusID == nil && d.CategoryID == nil {
		return errors.NewValidationFieldError("update",
			"at least one of current_owner_id, status_id, category_id is required",
			errors.ErrCodeMissingField)
	}
	return v.Validate()
}

// BulkUpdateDTO is the repository-level projection of the request.
type BulkUpdateDTO struct {
	CurrentOwnerID *int64
	StatusID       *int64
	CategoryID     *int64
}
