package status

import "github.com/tracksure/tracksure/internal/auth"

// ProductStatus is a tenant-defined lifecycle label such as "in production"
// or "sold".
type ProductStatus struct {
	ID          int64  `json:"id"`
	TenantID    int64  `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type RepositoryAPI interface {
	List(tenantID int64) ([]ProductStatus, error)
	GetByID(tenantID, statusID int64) (*ProductStatus, bool, error)
	Create(tenantID int64, dto StatusDTO) (*ProductStatus, error)
	Update(tenantID, statusID int64, dto StatusDTO) (*ProductStatus, error)
	SoftDelete(tenantID, statusID int64) error
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type ServiceAPI interface {
	List(actorID, tenantID int64) ([]ProductStatus, error)
	Create(actorID, tenantID int64, dto StatusDTO) (*ProductStatus, error)
	Update(actorID, tenantID, statusID int64, dto StatusDTO) (*ProductStatus, error)
	Delete(actorID, tenantID, statusID int64) error
}
