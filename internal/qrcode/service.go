package qrcode

import (
	"context"
	"fmt"
	"log/slog"

	qr "github.com/skip2/go-qrcode"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
)

const pngSize = 256

type Service struct {
	repo         RepositoryAPI
	guard        PermissionGuardAPI
	tenants      TenantReaderAPI
	uploader     UploaderAPI
	frontendBase string
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, guard PermissionGuardAPI, tenants TenantReaderAPI, uploader UploaderAPI, frontendBase string, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		guard:        guard,
		tenants:      tenants,
		uploader:     uploader,
		frontendBase: frontendBase,
		logger:       logger,
	}
}

// Create renders and stores the PNG before the row is inserted, so a stored
// code always has a resolvable image URL.
func (s *Service) Create(actorID, tenantID int64, dto CreateQRCodeDTO) (*QRCode, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermQRCodeCreate); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ProductExists(tenantID, dto.ProductID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to verify product", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("Product not found", apperrors.ErrCodeProductNotFound)
	}

	token := NewToken()
	payload := ScanURL(s.frontendBase, tenantID, token)

	png, err := qr.Encode(payload, qr.Medium, pngSize)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to render qr code", err)
	}

	objectName := fmt.Sprintf("qrcodes/%d/%s.png", tenantID, token)
	imageURL, err := s.uploader.Upload(context.Background(), objectName, png, "image/png")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to store qr image", err)
	}

	code := &QRCode{
		ProductID:      dto.ProductID,
		Name:           dto.Name,
		Token:          token,
		Details:        dto.Details,
		ViewPermission: dto.ViewPermission,
		ImageURL:       imageURL,
	}
	if err := s.repo.Create(code); err != nil {
		return nil, apperrors.NewInternalError("failed to store qr code", err)
	}

	s.logger.Info("qr code created",
		"tenant_id", tenantID,
		"product_id", dto.ProductID,
		"qr_id", code.ID)
	return code, nil
}

func (s *Service) List(actorID, tenantID int64, productID *int64) ([]QRCode, error) {
	if _, err := s.guard.CheckPermission(actorID, tenantID, auth.PermQRCodeRead); err != nil {
		return nil, err
	}

	var codes []QRCode
	var err error
	if productID != nil {
		codes, err = s.repo.ListByProduct(tenantID, *productID)
	} else {
		codes, err = s.repo.ListByTenant(tenantID)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list qr codes", err)
	}
	return codes, nil
}

// Scan resolves a token to its normalized detail object. It never mutates
// state: scanning the same token twice yields the same response.
func (s *Service) Scan(tenantID int64, token string, viewerID *int64) (*ScanResult, error) {
	code, details, err := s.repo.ResolveToken(tenantID, token)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to resolve token", err)
	}
	if code == nil || details == nil {
		return nil, apperrors.NewNotFoundError("QR code not found", apperrors.ErrCodeQRCodeNotFound)
	}

	if code.ViewPermission != PublicView {
		if viewerID == nil || *viewerID != code.ViewPermission {
			return nil, apperrors.NewForbiddenError("This QR code is restricted", apperrors.ErrCodeQRViewRestricted)
		}
	}

	brand, err := s.tenants.Get(tenantID)
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		Details: NormalizeDetails(code.Details, details),
		Tenant:  brand,
	}, nil
}

// NormalizeDetails projects the product snapshot onto the fixed scan field
// set. Fields outside the code's allow-list, and fields the product has no
// value for, come back as "NA".
func NormalizeDetails(allowList []string, p *ProductDetails) map[string]string {
	allowed := make(map[string]struct{}, len(allowList))
	for _, f := range allowList {
		allowed[f] = struct{}{}
	}

	values := map[string]string{
		FieldProductName:     p.Name,
		FieldCurrentOwner:    p.OwnerName,
		FieldManufacturer:    p.Manufacturer,
		FieldProductImage:    p.ImageURL,
		FieldProductStatus:   p.StatusName,
		FieldProductCategory: p.CategoryName,
	}

	out := make(map[string]string, len(ScanFields))
	for _, field := range ScanFields {
		value := ""
		if _, ok := allowed[field]; ok {
			value = values[field]
		}
		if value == "" {
			value = "NA"
		}
		out[field] = value
	}
	return out
}
