package qrcode

import "time"

// QRCode stores the opaque scan token and the JSON-encoded detail allow-list.
// ViewPermission is -1 for public codes, otherwise the only user id allowed
// to resolve the code.
type QRCode struct {
	ID             int64     `gorm:"primaryKey"`
	ProductID      int64     `gorm:"column:product_id;index;not null"`
	Name           string    `gorm:"column:name;not null"`
	Token          string    `gorm:"column:qr_token;uniqueIndex;not null"`
	Details        string    `gorm:"column:qr_details;type:text;not null"`
	ViewPermission int64     `gorm:"column:view_permission;default:-1"`
	ImageURL       string    `gorm:"column:image_url"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:now()"`
}

func (QRCode) TableName() string { return "qr_codes" }
