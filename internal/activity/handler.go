package activity

import (
	"net/http"
	"strconv"

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
// @Summary List the tenant's activity log, newest first
// @Tags activity
// @Produce json
// @Param limit query int false "Max rows to return"
// @Success 200 {array} ActivityLog
// @Router /api/v1/activity-logs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	logs, err := h.service.List(sess.UserID, sess.TenantID, limit)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, logs)
}
