package activity

import "time"

type ActivityLog struct {
	ID        int64     `gorm:"primaryKey"`
	TenantID  int64     `gorm:"column:tenant_id;index;not null"`
	UserID    int64     `gorm:"column:user_id;not null"`
	Action    string    `gorm:"column:action;not null"`
	Entity    string    `gorm:"column:entity;not null"`
	EntityID  int64     `gorm:"column:entity_id"`
	Detail    string    `gorm:"column:detail"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
