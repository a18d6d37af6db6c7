package tenant

import "github.com/tracksure/tracksure/internal/auth"

// Tenant is the brand profile rendered on scan pages and in the dashboard
// header.
type Tenant struct {
	ID          int64  `json:"id"`
	BrandName   string `json:"brandName"`
	LogoURL     string `json:"logoUrl"`
	ThemeColor  string `json:"themeColor"`
	Description string `json:"description"`
	RedirectURL string `json:"redirectUrl"`
}

type RepositoryAPI interface {
	GetByID(tenantID int64) (*Tenant, error)
	Update(tenantID int64, update UpdateTenantDTO) (*Tenant, error)
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type ServiceAPI interface {
	Get(tenantID int64) (*Tenant, error)
	Update(userID, tenantID int64, dto UpdateTenantDTO) (*Tenant, error)
}
