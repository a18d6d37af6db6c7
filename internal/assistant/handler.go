package assistant

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

type createChatRequest struct {
	Title string `json:"title"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// CreateChat godoc
// @Summary Start a new assistant chat
// @Tags trackbot
// @Accept json
// @Produce json
// @Success 201 {object} Chat
// @Router /api/v1/trackbot/chats [post]
func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	var req createChatRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteError(w, err)
		return
	}

	chat, err := h.service.CreateChat(sess.UserID, sess.TenantID, req.Title)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, chat)
}

// ListChats godoc
// @Summary List the user's assistant chats
// @Tags trackbot
// @Produce json
// @Success 200 {array} Chat
// @Router /api/v1/trackbot/chats [get]
func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	chats, err := h.service.ListChats(sess.UserID, sess.TenantID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, chats)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	chatID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid chat id", internal.ErrCodeValidationFailed))
		return
	}

	messages, err := h.service.ListMessages(sess.UserID, sess.TenantID, chatID)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a message to the assistant and get its reply
// @Tags trackbot
// @Accept json
// @Produce json
// @Param id path int true "Chat id"
// @Success 200 {object} Message
// @Router /api/v1/trackbot/chats/{id}/messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	chatID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, internal.NewValidationError("Invalid chat id", internal.ErrCodeValidationFailed))
		return
	}

	var req sendMessageRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteError(w, err)
		return
	}

	reply, err := h.service.SendMessage(r.Context(), sess.UserID, sess.TenantID, chatID, req.Content)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, reply)
}
