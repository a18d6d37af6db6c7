package tenant

import "time"

type Tenant struct {
	ID          int64     `gorm:"primaryKey"`
	BrandName   string    `gorm:"column:brand_name;uniqueIndex;not null"`
	LogoURL     string    `gorm:"column:logo_url"`
	ThemeColor  string    `gorm:"column:theme_color"`
	Description string    `gorm:"column:description"`
	RedirectURL string    `gorm:"column:redirect_url"`
	IsDeleted   bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Tenant) TableName() string { return "tenants" }

// Role stores its permission strings as a JSON-encoded array in a text
// column; the domain layer owns encoding and decoding.
type Role struct {
	ID          int64     `gorm:"primaryKey"`
	TenantID    int64     `gorm:"column:tenant_id;uniqueIndex:idx_roles_tenant_name;not null"`
	Name        string    `gorm:"column:name;uniqueIndex:idx_roles_tenant_name;not null"`
	Permissions string    `gorm:"column:permissions;type:text;not null"`
	IsDeleted   bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Role) TableName() string { return "roles" }
