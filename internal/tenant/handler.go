package tenant

import (
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

// Get godoc
// @Summary Get the authenticated tenant's brand profile
// @Tags tenant
// @Produce json
// @Success 200 {object} Tenant
// @Router /api/v1/tenant [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	t, err := h.service.Get(sess.TenantID)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

// Update godoc
// @Summary Update the tenant's brand profile
// @Tags tenant
// @Accept json
// @Produce json
// @Param request body UpdateTenantDTO true "Fields to update"
// @Success 200 {object} Tenant
// @Router /api/v1/tenant [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var dto UpdateTenantDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	t, err := h.service.Update(sess.UserID, sess.TenantID, dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}
