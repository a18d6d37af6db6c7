package upload

import (
	"io"
	"net/http"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/transport"
)

type Handler struct {
	transport.BaseHandler
	service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// Document godoc
// @Summary Upload a document file
// @Tags upload
// @Accept mpfd
// @Produce json
// @Success 201 {object} Result
// @Router /api/v1/upload/document [post]
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, KindDocument, MaxDocumentSize)
}

// ProductImage godoc
// @Summary Upload a product image
// @Tags upload
// @Accept mpfd
// @Produce json
// @Success 201 {object} Result
// @Router /api/v1/upload/product-image [post]
func (h *Handler) ProductImage(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, KindProductImage, MaxProductImageSize)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, kind Kind, limit int64) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	// One extra byte so a body at exactly the limit still parses; the
	// service enforces the real bound.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1)
	if err := r.ParseMultipartForm(limit + 1); err != nil {
		h.WriteError(w, internal.NewPayloadTooLargeError("File exceeds the upload limit"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, internal.NewValidationFieldError("file", "file is required", internal.ErrCodeMissingField))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.WriteError(w, internal.NewInternalError("failed to read upload", err))
		return
	}

	result, err := h.service.Upload(r.Context(), sess.TenantID, kind,
		header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, result)
}
