package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/core/datamodel/catalog"
	productmodel "github.com/tracksure/tracksure/internal/core/datamodel/product"
	usermodel "github.com/tracksure/tracksure/internal/core/datamodel/user"
	domain "github.com/tracksure/tracksure/internal/product"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(tenantID int64) ([]domain.Product, error) {
	var rows []productmodel.Product
	err := r.db.Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	names, err := r.lookupNames(tenantID)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		p := toDomain(&rows[i])
		names.decorate(p)
		products = append(products, *p)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(tenantID, productID int64) (*domain.Product, bool, error) {
	var row productmodel.Product
	err := r.db.Where("id = ? AND tenant_id = ?", productID, tenantID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	p := toDomain(&row)
	names, err := r.lookupNames(tenantID)
	if err != nil {
		return nil, false, err
	}
	names.decorate(p)
	return p, row.IsDeleted, nil
}

func (r *ProductRepository) Create(tenantID int64, dto domain.CreateProductDTO) (*domain.Product, error) {
	row := productmodel.Product{
		TenantID:       tenantID,
		CategoryID:     dto.CategoryID,
		StatusID:       dto.StatusID,
		ManufacturerID: dto.ManufacturerID,
		CurrentOwnerID: dto.CurrentOwnerID,
		Name:           dto.Name,
		Description:    dto.Description,
		ImageURL:       dto.ImageURL,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *ProductRepository) Update(tenantID, productID int64, dto domain.UpdateProductDTO) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if dto.StatusID != nil {
		updates["status_id"] = *dto.StatusID
	}
	if dto.CurrentOwnerID != nil {
		updates["current_owner_id"] = *dto.CurrentOwnerID
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}

	if len(updates) > 0 {
		err := r.db.Model(&productmodel.Product{}).
			Where("id = ? AND tenant_id = ? AND is_deleted = ?", productID, tenantID, false).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	updated, _, err := r.GetByID(tenantID, productID)
	return updated, err
}

func (r *ProductRepository) BulkUpdate(tenantID int64, productIDs []int64, dto domain.BulkUpdateDTO) error {
	updates := map[string]interface{}{}
	if dto.CurrentOwnerID != nil {
		updates["current_owner_id"] = *dto.CurrentOwnerID
	}
	if dto.StatusID != nil {
		updates["status_id"] = *dto.StatusID
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&productmodel.Product{}).
		Where("tenant_id = ? AND id IN ? AND is_deleted = ?", tenantID, productIDs, false).
		Updates(updates).Error
}

func (r *ProductRepository) SoftDelete(tenantID, productID int64) error {
	return r.db.Model(&productmodel.Product{}).
		Where("id = ? AND tenant_id = ?", productID, tenantID).
		Update("is_deleted", true).Error
}

func (r *ProductRepository) CountByIDs(tenantID int64, productIDs []int64) (int64, error) {
	var count int64
	err := r.db.Model(&productmodel.Product{}).
		Where("tenant_id = ? AND id IN ? AND is_deleted = ?", tenantID, productIDs, false).
		Count(&count).Error
	return count, err
}

func (r *ProductRepository) UserExists(tenantID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", userID, tenantID, false).
		Count(&count).Error
	return count > 0, err
}

type nameLookup struct {
	categories map[int64]string
	statuses   map[int64]string
	users      map[int64]string
}

func (n *nameLookup) decorate(p *domain.Product) {
	if p.CategoryID != nil {
		p.CategoryName = n.categories[*p.CategoryID]
	}
	if p.StatusID != nil {
		p.StatusName = n.statuses[*p.StatusID]
	}
	p.ManufacturerName = n.users[p.ManufacturerID]
	p.CurrentOwnerName = n.users[p.CurrentOwnerID]
}

func (r *ProductRepository) lookupNames(tenantID int64) (*nameLookup, error) {
	lookup := &nameLookup{
		categories: map[int64]string{},
		statuses:   map[int64]string{},
		users:      map[int64]string{},
	}

	var categories []catalog.Category
	if err := r.db.Select("id", "name").Where("tenant_id = ?", tenantID).Find(&categories).Error; err != nil {
		return nil, err
	}
	for i := range categories {
		lookup.categories[categories[i].ID] = categories[i].Name
	}

	var statuses []catalog.ProductStatus
	if err := r.db.Select("id", "name").Where("tenant_id = ?", tenantID).Find(&statuses).Error; err != nil {
		return nil, err
	}
	for i := range statuses {
		lookup.statuses[statuses[i].ID] = statuses[i].Name
	}

	var users []usermodel.User
	if err := r.db.Select("id", "name").Where("tenant_id = ?", tenantID).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		lookup.users[users[i].ID] = users[i].Name
	}

	return lookup, nil
}

func toDomain(row *productmodel.Product) *domain.Product {
	return &domain.Product{
		ID:             row.ID,
		TenantID:       row.TenantID,
		CategoryID:     row.CategoryID,
		StatusID:       row.StatusID,
		ManufacturerID: row.ManufacturerID,
		CurrentOwnerID: row.CurrentOwnerID,
		Name:           row.Name,
		Description:    row.Description,
		ImageURL:       row.ImageURL,
	}
}
