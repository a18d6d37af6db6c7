package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/core/datamodel/tenant"
	domain "github.com/tracksure/tracksure/internal/tenant"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetByID(tenantID int64) (*domain.Tenant, error) {
	var row tenant.Tenant
	err := r.db.Where("id = ? AND is_deleted = ?", tenantID, false).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *TenantRepository) Update(tenantID int64, dto domain.UpdateTenantDTO) (*domain.Tenant, error) {
	updates := map[string]interface{}{}
	if dto.BrandName != nil {
		updates["brand_name"] = *dto.BrandName
	}
	if dto.LogoURL != nil {
		updates["logo_url"] = *dto.LogoURL
	}
	if dto.ThemeColor != nil {
		updates["theme_color"] = *dto.ThemeColor
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.RedirectURL != nil {
		updates["redirect_url"] = *dto.RedirectURL
	}

	if len(updates) > 0 {
		result := r.db.Model(&tenant.Tenant{}).
			Where("id = ? AND is_deleted = ?", tenantID, false).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.GetByID(tenantID)
}

func toDomain(row *tenant.Tenant) *domain.Tenant {
	return &domain.Tenant{
		ID:          row.ID,
		BrandName:   row.BrandName,
		LogoURL:     row.LogoURL,
		ThemeColor:  row.ThemeColor,
		Description: row.Description,
		RedirectURL: row.RedirectURL,
	}
}
