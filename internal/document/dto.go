package document

import (
	errors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/core/common/validation"
)

type FolderDTO struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

func (d FolderDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	return v.Validate()
}

type CreateDocumentDTO struct {
	Name      string `json:"name"`
	FileURL   string `json:"file_url"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	FolderID  *int64 `json:"folder_id"`
	ProductID *int64 `json:"product_id"`
}

func (d CreateDocumentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("file_url", d.FileURL).Required()
	return v.Validate()
}

type UpdateDocumentDTO struct {
	Name     *string `json:"name"`
	FolderID *int64  `json:"folder_id"`
}

func (d UpdateDocumentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(255)
	}
	return v.Validate()
}
