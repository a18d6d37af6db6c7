package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/core/datamodel/catalog"
	"github.com/tracksure/tracksure/internal/status"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) List(tenantID int64) ([]status.ProductStatus, error) {
	var rows []catalog.ProductStatus
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	statuses := make([]status.ProductStatus, 0, len(rows))
	for i := range rows {
		statuses = append(statuses, *toDomain(&rows[i]))
	}
	return statuses, nil
}

func (r *StatusRepository) GetByID(tenantID, statusID int64) (*status.ProductStatus, bool, error) {
	var row catalog.ProductStatus
	err := r.db.Where("id = ? AND tenant_id = ?", statusID, tenantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return toDomain(&row), row.IsDeleted, nil
}

func (r *StatusRepository) Create(tenantID int64, dto status.StatusDTO) (*status.ProductStatus, error) {
	row := catalog.ProductStatus{
		TenantID:    tenantID,
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *StatusRepository) Update(tenantID, statusID int64, dto status.StatusDTO) (*status.ProductStatus, error) {
	err := r.db.Model(&catalog.ProductStatus{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", statusID, tenantID, false).
		Updates(map[string]interface{}{
			"name":        dto.Name,
			"description": dto.Description,
		}).Error
	if err != nil {
		return nil, err
	}

	updated, _, err := r.GetByID(tenantID, statusID)
	return updated, err
}

func (r *StatusRepository) SoftDelete(tenantID, statusID int64) error {
	return r.db.Model(&catalog.ProductStatus{}).
		Where("id = ? AND tenant_id = ?", statusID, tenantID).
		Update("is_deleted", true).Error
}

func toDomain(row *catalog.ProductStatus) *status.ProductStatus {
	return &status.ProductStatus{
		ID:          row.ID,
		TenantID:    row.TenantID,
		Name:        row.Name,
		Description: row.Description,
	}
}
