package upload

import "context"

// Kind selects the size and media-type policy applied to an upload.
type Kind string

const (
	KindDocument     Kind = "document"
	KindProductImage Kind = "product-image"
)

const (
	MaxDocumentSize     = 30 << 20
	MaxProductImageSize = 3 << 20
)

// Result is the stored object's public location.
type Result struct {
	URL         string `json:"url"`
	ObjectName  string `json:"object_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type ServiceAPI interface {
	Upload(ctx context.Context, tenantID int64, kind Kind, filename, contentType string, data []byte) (*Result, error)
}

type UploaderAPI interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error)
}
