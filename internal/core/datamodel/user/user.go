package user

import "time"

type User struct {
	ID            int64     `gorm:"primaryKey"`
	TenantID      int64     `gorm:"column:tenant_id;index;not null"`
	RoleID        int64     `gorm:"column:role_id;not null"`
	Email         string    `gorm:"column:email;uniqueIndex;not null"`
	Name          string    `gorm:"column:name;not null"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	AvatarURL     string    `gorm:"column:avatar_url"`
	EmailVerified bool      `gorm:"column:email_verified;default:false"`
	IsDeleted     bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string { return "users" }
