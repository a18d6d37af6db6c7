package category

import "github.com/tracksure/tracksure/internal/auth"

type Category struct {
	ID          int64  `json:"id"`
	TenantID    int64  `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type RepositoryAPI interface {
	List(tenantID int64) ([]Category, error)
	// GetByID returns the row even when soft-deleted so the service can tell
	// "gone" apart from "never existed".
	GetByID(tenantID, categoryID int64) (*Category, bool, error)
	Create(tenantID int64, dto CategoryDTO) (*Category, error)
	Update(tenantID, categoryID int64, dto CategoryDTO) (*Category, error)
	SoftDelete(tenantID, categoryID int64) error
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type ServiceAPI interface {
	List(actorID, tenantID int64) ([]Category, error)
	Create(actorID, tenantID int64, dto CategoryDTO) (*Category, error)
	Update(actorID, tenantID, categoryID int64, dto CategoryDTO) (*Category, error)
	Delete(actorID, tenantID, categoryID int64) error
}
