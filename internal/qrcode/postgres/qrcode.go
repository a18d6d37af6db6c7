package postgres

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/core/datamodel/catalog"
	productmodel "github.com/tracksure/tracksure/internal/core/datamodel/product"
	qrmodel "github.com/tracksure/tracksure/internal/core/datamodel/qrcode"
	usermodel "github.com/tracksure/tracksure/internal/core/datamodel/user"
	domain "github.com/tracksure/tracksure/internal/qrcode"
)

type QRCodeRepository struct {
	db *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) *QRCodeRepository {
	return &QRCodeRepository{db: db}
}

func (r *QRCodeRepository) ListByProduct(tenantID, productID int64) ([]domain.QRCode, error) {
	var rows []qrmodel.QRCode
	err := r.db.
		Joins("JOIN products ON products.id = qr_codes.product_id").
		Where("products.tenant_id = ? AND qr_codes.product_id = ?", tenantID, productID).
		Order("qr_codes.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func (r *QRCodeRepository) ListByTenant(tenantID int64) ([]domain.QRCode, error) {
	var rows []qrmodel.QRCode
	err := r.db.
		Joins("JOIN products ON products.id = qr_codes.product_id").
		Where("products.tenant_id = ?", tenantID).
		Order("qr_codes.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(rows)
}

func (r *QRCodeRepository) Create(code *domain.QRCode) error {
	details, err := json.Marshal(code.Details)
	if err != nil {
		return err
	}

	row := qrmodel.QRCode{
		ProductID:      code.ProductID,
		Name:           code.Name,
		Token:          code.Token,
		Details:        string(details),
		ViewPermission: code.ViewPermission,
		ImageURL:       code.ImageURL,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return err
	}

	code.ID = row.ID
	return nil
}

func (r *QRCodeRepository) ResolveToken(tenantID int64, token string) (*domain.QRCode, *domain.ProductDetails, error) {
	var row qrmodel.QRCode
	err := r.db.
		Joins("JOIN products ON products.id = qr_codes.product_id").
		Where("qr_codes.qr_token = ? AND products.tenant_id = ? AND products.is_deleted = ?", token, tenantID, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	code, err := toDomain(&row)
	if err != nil {
		return nil, nil, err
	}

	var p productmodel.Product
	if err := r.db.Where("id = ?", row.ProductID).First(&p).Error; err != nil {
		return nil, nil, err
	}

	details := &domain.ProductDetails{
		ProductID: p.ID,
		TenantID:  p.TenantID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
	}

	var owner usermodel.User
	if err := r.db.Select("name").Where("id = ?", p.CurrentOwnerID).First(&owner).Error; err == nil {
		details.OwnerName = owner.Name
	}
	var manufacturer usermodel.User
	if err := r.db.Select("name").Where("id = ?", p.ManufacturerID).First(&manufacturer).Error; err == nil {
		details.Manufacturer = manufacturer.Name
	}
	if p.StatusID != nil {
		var status catalog.ProductStatus
		if err := r.db.Select("name").Where("id = ?", *p.StatusID).First(&status).Error; err == nil {
			details.StatusName = status.Name
		}
	}
	if p.CategoryID != nil {
		var category catalog.Category
		if err := r.db.Select("name").Where("id = ?", *p.CategoryID).First(&category).Error; err == nil {
			details.CategoryName = category.Name
		}
	}

	return code, details, nil
}

func (r *QRCodeRepository) ProductExists(tenantID, productID int64) (bool, error) {
	var count int64
	err := r.db.Model(&productmodel.Product{}).
		Where("id = ? AND tenant_id = ? AND is_deleted = ?", productID, tenantID, false).
		Count(&count).Error
	return count > 0, err
}

func toDomainList(rows []qrmodel.QRCode) ([]domain.QRCode, error) {
	codes := make([]domain.QRCode, 0, len(rows))
	for i := range rows {
		code, err := toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		codes = append(codes, *code)
	}
	return codes, nil
}

func toDomain(row *qrmodel.QRCode) (*domain.QRCode, error) {
	code := &domain.QRCode{
		ID:             row.ID,
		ProductID:      row.ProductID,
		Name:           row.Name,
		Token:          row.Token,
		ViewPermission: row.ViewPermission,
		ImageURL:       row.ImageURL,
	}
	if row.Details != "" {
		if err := json.Unmarshal([]byte(row.Details), &code.Details); err != nil {
			return nil, err
		}
	}
	return code, nil
}
