package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/auth"
	"github.com/tracksure/tracksure/internal/notification"
	"github.com/tracksure/tracksure/internal/transport"
)

type TokenValidatorAPI interface {
	ValidateAccessToken(tokenString string) (*auth.Claims, error)
}

type Handler struct {
	transport.BaseHandler
	registry      *Registry
	tokens        TokenValidatorAPI
	notifications notification.ServiceAPI
	upgrader      websocket.Upgrader
}

func NewHandler(registry *Registry, tokens TokenValidatorAPI, notifications notification.ServiceAPI) *Handler {
	return &Handler{
		registry:      registry,
		tokens:        tokens,
		notifications: notifications,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers cannot set custom headers on websocket dials, so
			// origin enforcement happens at the CORS layer in front.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades GET /ws?token=<jwt>. The token is verified before the
// upgrade; the first frame after the handshake is the user's current
// notification list.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		h.WriteError(w, internal.NewUnauthorizedError("Missing authentication token", internal.ErrCodeInvalidToken))
		return
	}

	claims, err := h.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	conn := h.registry.Register(claims.UserID, ws)

	list, err := h.notifications.List(claims.UserID)
	if err == nil {
		h.registry.sendEnvelope(conn, notification.Envelope{Type: "notification", Payload: list})
	}

	go h.readLoop(conn, ws)
}

// readLoop drains incoming frames so pong handlers fire, and unregisters the
// socket once the peer goes away.
func (h *Handler) readLoop(conn *Conn, ws *websocket.Conn) {
	defer h.registry.Unregister(conn)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}
