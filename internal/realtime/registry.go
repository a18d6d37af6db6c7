package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// socket is the slice of *websocket.Conn the registry uses; tests substitute
// an in-memory fake.
type socket interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Conn is one registered websocket. The write mutex serializes broadcast and
// ping writes on the same underlying socket.
type Conn struct {
	userID int64
	sock   socket

	mu    sync.Mutex
	alive bool
}

func (c *Conn) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteMessage(messageType, data)
}

func (c *Conn) ping(deadline time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.WriteControl(websocket.PingMessage, nil, deadline)
}

// Registry tracks every live socket per user. A user may hold several
// connections (multiple tabs, devices); each broadcast reaches all of them.
type Registry struct {
	mu        sync.Mutex
	conns     map[int64]map[*Conn]struct{}
	heartbeat time.Duration
	logger    *slog.Logger
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewRegistry(heartbeat time.Duration, logger *slog.Logger) *Registry {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &Registry{
		conns:     make(map[int64]map[*Conn]struct{}),
		heartbeat: heartbeat,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

func (r *Registry) Register(userID int64, sock socket) *Conn {
	conn := &Conn{userID: userID, sock: sock, alive: true}
	sock.SetPongHandler(func(string) error {
		conn.mu.Lock()
		conn.alive = true
		conn.mu.Unlock()
		return nil
	})

	r.mu.Lock()
	if r.conns[userID] == nil {
		r.conns[userID] = make(map[*Conn]struct{})
	}
	r.conns[userID][conn] = struct{}{}
	total := len(r.conns[userID])
	r.mu.Unlock()

	r.logger.Info("websocket registered", "user_id", userID, "connections", total)
	return conn
}

func (r *Registry) Unregister(conn *Conn) {
	r.mu.Lock()
	if set, ok := r.conns[conn.userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(r.conns, conn.userID)
		}
	}
	r.mu.Unlock()

	conn.sock.Close()
}

// BroadcastToUser sends the payload to every socket the user holds. Send
// failures evict the broken socket but never fail the broadcast.
func (r *Registry) BroadcastToUser(userID int64, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	r.mu.Lock()
	set := r.conns[userID]
	targets := make([]*Conn, 0, len(set))
	for conn := range set {
		targets = append(targets, conn)
	}
	r.mu.Unlock()

	if len(targets) == 0 {
		r.logger.Warn("no active sockets for user", "user_id", userID)
		return nil
	}

	for _, conn := range targets {
		if err := conn.write(websocket.TextMessage, data); err != nil {
			r.logger.Warn("websocket send failed, evicting",
				"user_id", userID,
				"error", err)
			r.Unregister(conn)
		}
	}
	return nil
}

// Start runs the heartbeat loop until Stop. Each tick terminates sockets
// that never answered the previous ping, then pings the survivors.
func (r *Registry) Start() {
	go func() {
		ticker := time.NewTicker(r.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) sweep() {
	r.mu.Lock()
	var all []*Conn
	for _, set := range r.conns {
		for conn := range set {
			all = append(all, conn)
		}
	}
	r.mu.Unlock()

	deadline := time.Now().Add(r.heartbeat / 2)
	for _, conn := range all {
		conn.mu.Lock()
		alive := conn.alive
		conn.alive = false
		conn.mu.Unlock()

		if !alive {
			r.logger.Info("websocket missed heartbeat, closing", "user_id", conn.userID)
			r.Unregister(conn)
			continue
		}
		if err := conn.ping(deadline); err != nil {
			r.Unregister(conn)
		}
	}
}

// sendEnvelope targets a single socket, used for the initial frame after a
// handshake.
func (r *Registry) sendEnvelope(conn *Conn, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("failed to encode frame", "error", err)
		return
	}
	if err := conn.write(websocket.TextMessage, data); err != nil {
		r.Unregister(conn)
	}
}

// ConnectionCount reports the live socket count for a user.
func (r *Registry) ConnectionCount(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns[userID])
}
