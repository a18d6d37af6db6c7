package qrcode

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/transport"
)

type TokenValidatorAPI interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

type Handler struct {
	transport.BaseHandler
	service ServiceAPI
	tokens  TokenValidatorAPI
}

func NewHandler(service ServiceAPI, tokens TokenValidatorAPI) *Handler {
	return &Handler{service: service, tokens: tokens}
}

// Create godoc
// @Summary Generate a QR code for a product
// @Tags qrcode
// @Accept json
// @Produce json
// @Param request body CreateQRCodeDTO true "QR code definition"
// @Success 201 {object} QRCode
// @Router /api/v1/qrcode [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var dto CreateQRCodeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	code, err := h.service.Create(sess.UserID, sess.TenantID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, code)
}

// List godoc
// @Summary List QR codes, optionally for a single product
// @Tags qrcode
// @Produce json
// @Param product_id query int false "Product filter"
// @Success 200 {array} QRCode
// @Router /api/v1/qrcode [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var productID *int64
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, internal.NewValidationError("Invalid product id", internal.ErrCodeValidationFailed))
			return
		}
		productID = &id
	}

	codes, err := h.service.List(sess.UserID, sess.TenantID, productID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, codes)
}

// Scan godoc
// @Summary Resolve a scanned QR token to its public product details
// @Description Public route. Restricted codes additionally require the
// @Description X-Jwt-Bearer header of the permitted user.
// @Tags qrcode
// @Produce json
// @Param tenantID path int true "Tenant id from the QR payload"
// @Param token query string true "Scan token"
// @Success 200 {object} ScanResult
// @Router /api/v1/qrcode/scan/{tenantID} [get]
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(chi.URLParam(r, "tenantID"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid tenant id", internal.ErrCodeValidationFailed))
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		h.WriteError(w, internal.NewValidationError("Missing token", internal.ErrCodeMissingField))
		return
	}

	// The scan page is public, but a logged-in viewer's identity unlocks
	// restricted codes.
	var viewerID *int64
	if raw := r.Header.Get(auth.HeaderJWT); raw != "" {
		claims, err := h.tokens.ValidateAccessToken(raw)
		if err == nil {
			viewerID = &claims.UserID
		}
	}

	result, err := h.service.Scan(tenantID, token, viewerID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
