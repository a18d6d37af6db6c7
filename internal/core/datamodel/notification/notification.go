package notification

import "time"

type Notification struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;index;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Tags        string    `gorm:"column:tags;type:text"`
	Read        bool      `gorm:"column:read;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Notification) TableName() string { return "notifications" }
