package dashboard

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

// Summary godoc
// @Summary Per-tenant dashboard counters
// @Tags dashboard
// @Produce json
// @Success 200 {object} Summary
// @Router /api/v1/dashboard [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	summary, err := h.service.Summary(sess.UserID, sess.TenantID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}
