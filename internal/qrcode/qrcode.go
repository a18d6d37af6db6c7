package qrcode

import (
	"context"

	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/tenant"
)

// Detail field names a QR code may expose. Anything outside this set never
// reaches a scan response.
const (
	FieldProductName     = "productName"
	FieldCurrentOwner    = "currentOwner"
	FieldManufacturer    = "manufacturer"
	FieldProductImage    = "productImage"
	FieldProductStatus   = "productStatus"
	FieldProductCategory = "productCategory"
)

// ScanFields is the fixed response shape: every scan returns exactly these
// keys, in this order.
var ScanFields = []string{
	FieldProductName,
	FieldCurrentOwner,
	FieldManufacturer,
	FieldProductImage,
	FieldProductStatus,
	FieldProductCategory,
}

// PublicView marks a code scannable without authentication.
const PublicView int64 = -1

type QRCode struct {
	ID             int64    `json:"id"`
	ProductID      int64    `json:"product_id"`
	Name           string   `json:"name"`
	Token          string   `json:"token"`
	Details        []string `json:"details"`
	ViewPermission int64    `json:"view_permission"`
	ImageURL       string   `json:"image_url"`
}

// ProductDetails is the product snapshot the scan normalizer reads from.
// Empty strings mean the product has no value for that field.
type ProductDetails struct {
	ProductID    int64
	TenantID     int64
	Name         string
	OwnerName    string
	Manufacturer string
	ImageURL     string
	StatusName   string
	CategoryName string
}

// ScanResult is the public payload behind a scanned code.
type ScanResult struct {
	Details map[string]string `json:"details"`
	Tenant  *tenant.Tenant    `json:"tenant"`
}

type RepositoryAPI interface {
	ListByProduct(tenantID, productID int64) ([]QRCode, error)
	ListByTenant(tenantID int64) ([]QRCode, error)
	Create(code *QRCode) error
	// ResolveToken joins the code to its product, scoped to the tenant.
	// Both return values are nil when the token does not resolve.
	ResolveToken(tenantID int64, token string) (*QRCode, *ProductDetails, error)
	ProductExists(tenantID, productID int64) (bool, error)
}

type PermissionGuardAPI interface {
	CheckPermission(userID, tenantID int64, permission string) (*auth.User, error)
}

type TenantReaderAPI interface {
	Get(tenantID int64) (*tenant.Tenant, error)
}

// UploaderAPI stores a rendered PNG and returns its public URL.
type UploaderAPI interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}

type ServiceAPI interface {
	Create(actorID, tenantID int64, dto CreateQRCodeDTO) (*QRCode, error)
	List(actorID, tenantID int64, productID *int64) ([]QRCode, error)
	Scan(tenantID int64, token string, viewerID *int64) (*ScanResult, error)
}
