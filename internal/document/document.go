package document

import (
	"time"

	"github.com/tracksure/tracksure/internal/auth"
)

type Folder struct {
	ID       int64  `json:"id"`
	TenantID int64  `json:"tenant_id"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Name     string `json:"name"`
}

type Document struct {
	ID        int64      `json:"id"`
	TenantID  int64      `json:"tenant_id"`
	FolderID  *int64     `json:"folder_id,omitempty"`
	ProductID *int64     `json:"product_id,omitempty"`
	Name      string     `json:"name"`
	FileURL   string     `json:"file_url"`
	MimeType  string     `json:"mime_type,omitempty"`
	SizeBytes int64      `json:"size_bytes,omitempty"`
	IsTrashed bool       `json:"is_trashed"`
	TrashedAt *time.Time `json:"trashed_at,omitempty"`
}

type RepositoryAPI interface {
	ListFolders(tenantID int64) ([]Folder, error)
	GetFolder(tenantID, folderID int64) (*Folder, error)
	CreateFolder(tenantID int64, dto FolderDTO) (*Folder, error)
	UpdateFolder(tenantID, folderID int64, dto FolderDTO) (*Folder, error)
	DeleteFolder(tenantID, folderID int64) error

	ListDocuments(tenantID int64, folderID *int64, trashed bool) ([]Document, error)
	GetDocument(tenantID, documentID int64) (*Document, error)
	CreateDocument(tenantID int64, dto CreateDocumentDTO) (*Document, error)
	UpdateDocument(tenantID, documentID int64, dto UpdateDocumentDTO) (*Document, error)
	SetTrashed(tenantID, documentID int64, trashed bool) error
	DeletePermanently(tenantID, documentID int64) error
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type ServiceAPI interface {
	ListFolders(actorID, tenantID int64) ([]Folder, error)
	CreateFolder(actorID, tenantID int64, dto FolderDTO) (*Folder, error)
	UpdateFolder(actorID, tenantID, folderID int64, dto FolderDTO) (*Folder, error)
	DeleteFolder(actorID, tenantID, folderID int64) error

	ListDocuments(actorID, tenantID int64, folderID *int64, trashed bool) ([]Document, error)
	CreateDocument(actorID, tenantID int64, dto CreateDocumentDTO) (*Document, error)
	UpdateDocument(actorID, tenantID, documentID int64, dto UpdateDocumentDTO) (*Document, error)
	Delete(actorID, tenantID, documentID int64, permanent bool) error
	Restore(actorID, tenantID, documentID int64) error
}
