package product

import "time"

type Product struct {
	ID             int64     `gorm:"primaryKey"`
	TenantID       int64     `gorm:"column:tenant_id;index;not null"`
	CategoryID     *int64    `gorm:"column:category_id"`
	StatusID       *int64    `gorm:"column:status_id"`
	ManufacturerID int64     `gorm:"column:manufacturer_id;not null"`
	CurrentOwnerID int64     `gorm:"column:current_owner_id;index;not null"`
	Name           string    `gorm:"column:name;not null"`
	Description    string    `gorm:"column:description"`
	ImageURL       string    `gorm:"column:image_url"`
	IsDeleted      bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:now()"`
}

func (Product) TableName() string { return "products" }
