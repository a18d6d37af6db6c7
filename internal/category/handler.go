package category

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
// @Summary List the tenant's categories
// @Tags categories
// @Produce json
// @Success 200 {array} Category
// @Router /api/v1/categories [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	categories, err := h.service.List(sess.UserID, sess.TenantID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var dto CategoryDTO
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

	categoryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid category id", internal.ErrCodeValidationFailed))
		return
	}

	var dto CategoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	updated, err := h.service.Update(sess.UserID, sess.TenantID, categoryID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	categoryID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid category id", internal.ErrCodeValidationFailed))
		return
	}

	if err := h.service.Delete(sess.UserID, sess.TenantID, categoryID); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}
