package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	documentmodel "github.com/tracksure/tracksure/internal/core/datamodel/document"
	domain "github.com/tracksure/tracksure/internal/document"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) ListFolders(tenantID int64) ([]domain.Folder, error) {
	var rows []documentmodel.Folder
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	folders := make([]domain.Folder, 0, len(rows))
	for i := range rows {
		folders = append(folders, domain.Folder{
			ID:       rows[i].ID,
			TenantID: rows[i].TenantID,
			ParentID: rows[i].ParentID,
			Name:     rows[i].Name,
		})
	}
	return folders, nil
}

func (r *DocumentRepository) GetFolder(tenantID, folderID int64) (*domain.Folder, error) {
	var row documentmodel.Folder
	err := r.db.Where("id = ? AND tenant_id = ? AND is_deleted = ?", folderID, tenantID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Folder{ID: row.ID, TenantID: row.TenantID, ParentID: row.ParentID, Name: row.Name}, nil
}

func (r *DocumentRepository) CreateFolder(tenantID int64, dto domain.FolderDTO) (*domain.Folder, error) {
	row := documentmodel.Folder{
		TenantID: tenantID,
		ParentID: dto.ParentID,
		Name:     dto.Name,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &domain.Folder{ID: row.ID, TenantID: row.TenantID, ParentID: row.ParentID, Name: row.Name}, nil
}

func (r *DocumentRepository) UpdateFolder(tenantID, folderID int64, dto domain.FolderDTO) (*domain.Folder, error) {
	result := r.db.Model(&documentmodel.Folder{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", folderID, tenantID, false).
		Updates(map[string]interface{}{
			"name":      dto.Name,
			"parent_id": dto.ParentID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetFolder(tenantID, folderID)
}

// DeleteFolder soft-deletes the folder; documents inside fall back to the
// root listing.
func (r *DocumentRepository) DeleteFolder(tenantID, folderID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&documentmodel.Document{}).
			Where("folder_id = ? AND tenant_id = ?", folderID, tenantID).
			Update("folder_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Model(&documentmodel.Folder{}).
			Where("id = ? AND tenant_id = ?", folderID, tenantID).
			Update("is_deleted", true).Error
	})
}

func (r *DocumentRepository) ListDocuments(tenantID int64, folderID *int64, trashed bool) ([]domain.Document, error) {
	query := r.db.Where("tenant_id = ? AND is_trashed = ?", tenantID, trashed)
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	}

	var rows []documentmodel.Document
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	documents := make([]domain.Document, 0, len(rows))
	for i := range rows {
		documents = append(documents, *toDomain(&rows[i]))
	}
	return documents, nil
}

func (r *DocumentRepository) GetDocument(tenantID, documentID int64) (*domain.Document, error) {
	var row documentmodel.Document
	err := r.db.Where("id = ? AND tenant_id = ?", documentID, tenantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *DocumentRepository) CreateDocument(tenantID int64, dto domain.CreateDocumentDTO) (*domain.Document, error) {
	row := documentmodel.Document{
		TenantID:  tenantID,
		FolderID:  dto.FolderID,
		ProductID: dto.ProductID,
		Name:      dto.Name,
		FileURL:   dto.FileURL,
		MimeType:  dto.MimeType,
		SizeBytes: dto.SizeBytes,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *DocumentRepository) UpdateDocument(tenantID, documentID int64, dto domain.UpdateDocumentDTO) (*domain.Document, error) {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.FolderID != nil {
		updates["folder_id"] = *dto.FolderID
	}

	if len(updates) > 0 {
		result := r.db.Model(&documentmodel.Document{}).
			Where("id = ? AND tenant_id = ? AND is_trashed = ?", documentID, tenantID, false).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.GetDocument(tenantID, documentID)
}

func (r *DocumentRepository) SetTrashed(tenantID, documentID int64, trashed bool) error {
	updates := map[string]interface{}{"is_trashed": trashed}
	if trashed {
		now := time.Now()
		updates["trashed_at"] = &now
	} else {
		updates["trashed_at"] = nil
	}

	return r.db.Model(&documentmodel.Document{}).
		Where("id = ? AND tenant_id = ?", documentID, tenantID).
		Updates(updates).Error
}

func (r *DocumentRepository) DeletePermanently(tenantID, documentID int64) error {
	return r.db.Where("id = ? AND tenant_id = ?", documentID, tenantID).
		Delete(&documentmodel.Document{}).Error
}

func toDomain(row *documentmodel.Document) *domain.Document {
	return &domain.Document{
		ID:        row.ID,
		TenantID:  row.TenantID,
		FolderID:  row.FolderID,
		ProductID: row.ProductID,
		Name:      row.Name,
		FileURL:   row.FileURL,
		MimeType:  row.MimeType,
		SizeBytes: row.SizeBytes,
		IsTrashed: row.IsTrashed,
		TrashedAt: row.TrashedAt,
	}
}
