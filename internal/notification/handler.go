package notification

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

// List godoc
// @Summary List the authenticated user's notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} Notification
// @Router /api/v1/notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	list, err := h.service.List(sess.UserID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

type updateReadRequest struct {
	IDs []int64 `json:"ids"`
}

// UpdateRead godoc
// @Summary Mark notifications as read
// @Tags notifications
// @Accept json
// @Success 204
// @Router /api/v1/notifications/read [put]
func (h *Handler) UpdateRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var req updateReadRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteError(w, err)
		return
	}

	if err := h.service.UpdateRead(sess.UserID, req.IDs); err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}
