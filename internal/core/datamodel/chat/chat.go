package chat

import "time"

type Chat struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;index;not null"`
	TenantID  int64     `gorm:"column:tenant_id;index;not null"`
	Title     string    `gorm:"column:title"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Chat) TableName() string { return "chats" }

// Message role is either "user" or "assistant"; tool-call intermediates are
// never persisted.
type Message struct {
	ID        int64     `gorm:"primaryKey"`
	ChatID    int64     `gorm:"column:chat_id;index;not null"`
	Role      string    `gorm:"column:role;not null"`
	Content   string    `gorm:"column:content;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Message) TableName() string { return "messages" }
