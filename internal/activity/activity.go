package activity

import (
	"time"

	"github.com/tracksure/tracksure/internal/auth"
)

// ActivityLog is one row of the per-tenant audit trail.
type ActivityLog struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  int64     `json:"entity_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ServiceAPI interface {
	List(actorID, tenantID int64, limit int) ([]ActivityLog, error)
}

type RepositoryAPI interface {
	Insert(log *ActivityLog) error
	ListByTenant(tenantID int64, limit int) ([]ActivityLog, error)
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}
