package upload

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/tracksure/tracksure/internal"
)

var documentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"text/plain": {},
	"text/csv":   {},
	"image/png":  {},
	"image/jpeg": {},
}

var imageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

type Service struct {
	storage UploaderAPI
	logger  *slog.Logger
}

func NewService(storage UploaderAPI, logger *slog.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

func (s *Service) Upload(ctx context.Context, tenantID int64, kind Kind, filename, contentType string, data []byte) (*Result, error) {
	limit, allowed, err := policyFor(kind)
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > limit {
		return nil, apperrors.NewPayloadTooLargeError(
			fmt.Sprintf("File exceeds the %dMB limit", limit>>20))
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if _, ok := allowed[mediaType]; !ok {
		return nil, apperrors.NewUnsupportedMediaError(
			fmt.Sprintf("Media type %q is not allowed", mediaType))
	}

	objectName := fmt.Sprintf("%s/%d/%d-%s%s",
		kind, tenantID, time.Now().UnixMilli(), uuid.NewString(), path.Ext(filename))

	url, err := s.storage.Upload(ctx, objectName, data, mediaType)
	if err != nil {
		s.logger.Error("upload failed",
			"tenant_id", tenantID,
			"kind", kind,
			"object", objectName,
			"error", err)
		return nil, &apperrors.AppError{
			Type:       apperrors.ErrorTypeExternal,
			Code:       apperrors.ErrCodeStorageFailed,
			Message:    "Failed to store file",
			StatusCode: 502,
			Cause:      err,
		}
	}

	return &Result{
		URL:         url,
		ObjectName:  objectName,
		ContentType: mediaType,
		SizeBytes:   int64(len(data)),
	}, nil
}

func policyFor(kind Kind) (int64, map[string]struct{}, error) {
	switch kind {
	case KindDocument:
		return MaxDocumentSize, documentTypes, nil
	case KindProductImage:
		return MaxProductImageSize, imageTypes, nil
	default:
		return 0, nil, apperrors.NewValidationError("Unknown upload kind", apperrors.ErrCodeValidationFailed)
	}
}
