package postgres

import (
	"gorm.io/gorm"

	"github.com/tracksure/tracksure/internal/core/datamodel/catalog"
	documentmodel "github.com/tracksure/tracksure/internal/core/datamodel/document"
	notificationmodel "github.com/tracksure/tracksure/internal/core/datamodel/notification"
	productmodel "github.com/tracksure/tracksure/internal/core/datamodel/product"
	qrcodemodel "github.com/tracksure/tracksure/internal/core/datamodel/qrcode"
	usermodel "github.com/tracksure/tracksure/internal/core/datamodel/user"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) CountProducts(tenantID int64) (int64, error) {
	var count int64
	err := r.db.Model(&productmodel.Product{}).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountCategories(tenantID int64) (int64, error) {
	var count int64
	err := r.db.Model(&catalog.Category{}).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountStatuses(tenantID int64) (int64, error) {
	var count int64
	err := r.db.Model(&catalog.ProductStatus{}).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountUsers(tenantID int64) (int64, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountDocuments(tenantID int64) (int64, error) {
	var count int64
	err := r.db.Model(&documentmodel.Document{}).
		Where("tenant_id = ? AND is_trashed = ?", tenantID, false).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountQRCodes(tenantID int64) (int64, error) {
	var count int64
	err := r.db.Model(&qrcodemodel.QRCode{}).
		Joins("JOIN products ON products.id = qr_codes.product_id").
		Where("products.tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountUnreadNotifications(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&notificationmodel.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}
