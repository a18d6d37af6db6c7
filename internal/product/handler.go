package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

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

// List godoc
// @Summary List the tenant's products
// @Tags products
// @Produce json
// @Success 200 {array} Product
// @Router /api/v1/products [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	products, err := h.service.List(sess.UserID, sess.TenantID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid product id", internal.ErrCodeValidationFailed))
		return
	}

	p, err := h.service.Get(sess.UserID, sess.TenantID, productID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var dto CreateProductDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	created, err := h.service.Create(sess.UserID, sess.TenantID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid product id", internal.ErrCodeValidationFailed))
		return
	}

	var dto UpdateProductDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	updated, err := h.service.Update(sess.UserID, sess.TenantID, productID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

// BulkUpdate godoc
// @Summary Apply one change set to many products
// @Tags products
// @Accept json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products/bulk [put]
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var dto BulkUpdateRequestDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	if err := h.service.BulkUpdate(sess.UserID, sess.TenantID, dto); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"updated": len(dto.ProductIDs)})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid product id", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.service.Delete(sess.UserID, sess.TenantID, productID); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}
