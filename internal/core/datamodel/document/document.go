package document

import "time"

type Folder struct {
	ID        int64     `gorm:"primaryKey"`
	TenantID  int64     `gorm:"column:tenant_id;index;not null"`
	ParentID  *int64    `gorm:"column:parent_id"`
	Name      string    `gorm:"column:name;not null"`
	IsDeleted bool      `gorm:"column:is_deleted;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Folder) TableName() string { return "folders" }

// Document rows go through a two-stage delete: IsTrashed marks the trash
// stage, a permanent delete removes the row entirely.
type Document struct {
	ID        int64      `gorm:"primaryKey"`
	TenantID  int64      `gorm:"column:tenant_id;index;not null"`
	FolderID  *int64     `gorm:"column:folder_id"`
	ProductID *int64     `gorm:"column:product_id"`
	Name      string     `gorm:"column:name;not null"`
	FileURL   string     `gorm:"column:file_url;not null"`
	MimeType  string     `gorm:"column:mime_type"`
	SizeBytes int64      `gorm:"column:size_bytes"`
	IsTrashed bool       `gorm:"column:is_trashed;default:false"`
	TrashedAt *time.Time `gorm:"column:trashed_at"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Document) TableName() string { return "documents" }
