package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/category"
	"github.com/tracksure/tracksure/internal/core/datamodel/catalog"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(tenantID int64) ([]category.Category, error) {
	var rows []catalog.Category
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]category.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, *toDomain(&rows[i]))
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(tenantID, categoryID int64) (*category.Category, bool, error) {
	var row catalog.Category
	err := r.db.Where("id = ? AND tenant_id = ?", categoryID, tenantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return toDomain(&row), row.IsDeleted, nil
}

func (r *CategoryRepository) Create(tenantID int64, dto category.CategoryDTO) (*category.Category, error) {
	row := catalog.Category{
		TenantID:    tenantID,
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *CategoryRepository) Update(tenantID, categoryID int64, dto category.CategoryDTO) (*category.Category, error) {
	err := r.db.Model(&catalog.Category{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", categoryID, tenantID, false).
		Updates(map[string]interface{}{
			"name":        dto.Name,
			"description": dto.Description,
		}).Error
	if err != nil {
		return nil, err
	}

	updated, _, err := r.GetByID(tenantID, categoryID)
	return updated, err
}

func (r *CategoryRepository) SoftDelete(tenantID, categoryID int64) error {
	return r.db.Model(&catalog.Category{}).
		Where("id = ? AND tenant_id = ?", categoryID, tenantID).
		Update("is_deleted", true).Error
}

func toDomain(row *catalog.Category) *category.Category {
	return &category.Category{
		ID:          row.ID,
		TenantID:    row.TenantID,
		Name:        row.Name,
		Description: row.Description,
	}
}
