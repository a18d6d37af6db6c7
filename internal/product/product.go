package product

import (
	"github.com/tracksure/tracksure/internal/auth"
)

// Product is the traceable unit. Manufacturer and current owner are users of
// the same tenant; category and status are optional catalog references.
type Product struct {
	ID             int64  `json:"id"`
	TenantID       int64  `json:"tenant_id"`
	CategoryID     *int64 `json:"category_id,omitempty"`
	StatusID       *int64 `json:"status_id,omitempty"`
	ManufacturerID int64  `json:"manufacturer_id"`
	CurrentOwnerID int64  `json:"current_owner_id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`

	CategoryName     string `json:"category_name,omitempty"`
	StatusName       string `json:"status_name,omitempty"`
	ManufacturerName string `json:"manufacturer_name,omitempty"`
	CurrentOwnerName string `json:"current_owner_name,omitempty"`
}

type RepositoryAPI interface {
	List(tenantID int64) ([]Product, error)
	GetByID(tenantID, productID int64) (*Product, bool, error)
	Create(tenantID int64, dto CreateProductDTO) (*Product, error)
	Update(tenantID, productID int64, dto UpdateProductDTO) (*Product, error)
	BulkUpdate(tenantID int64, productIDs []int64, dto BulkUpdateDTO) error
	SoftDelete(tenantID, productID int64) error
	CountByIDs(tenantID int64, productIDs []int64) (int64, error)
	UserExists(tenantID, userID int64) (bool, error)
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type ServiceAPI interface {
	List(actorID, tenantID int64) ([]Product, error)
	Get(actorID, tenantID, productID int64) (*Product, error)
	Create(actorID, tenantID int64, dto CreateProductDTO) (*Product, error)
	Update(actorID, tenantID, productID int64, dto UpdateProductDTO) (*Product, error)
	BulkUpdate(actorID, tenantID int64, dto BulkUpdateRequestDTO) error
	Delete(actorID, tenantID, productID int64) error
}
