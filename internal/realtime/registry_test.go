package realtime

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/gorilla/websocket"
)

type fakeSocket struct {
	mu          sync.Mutex
	frames      [][]byte
	pings       int
	closed      bool
	failWrites  bool
	pongHandler func(string) error
}

func (f *fakeSocket) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrites {
		return errors.New("broken pipe")
	}
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeSocket) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if messageType == websocket.PingMessage {
		f.pings++
	}
	return nil
}

func (f *fakeSocket) SetPongHandler(h func(string) error) {
	f.pongHandler = h
}

func (f *fakeSocket) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSocket) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *fakeSocket) lastFrame() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames[len(f.frames)-1]
}

func (f *fakeSocket) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var _ = Describe("Registry", func() {
	var registry *Registry

	BeforeEach(func() {
		registry = NewRegistry(30*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("BroadcastToUser", func() {
		It("reaches every socket the user holds, and no one else's", func() {
			first := &fakeSocket{}
			second := &fakeSocket{}
			other := &fakeSocket{}
			registry.Register(1, first)
			registry.Register(1, second)
			registry.Register(2, other)

			Expect(registry.BroadcastToUser(1, map[string]string{"type": "notification"})).To(Succeed())

			Expect(first.frameCount()).To(Equal(1))
			Expect(second.frameCount()).To(Equal(1))
			Expect(other.frameCount()).To(BeZero())

			var frame map[string]string
			Expect(json.Unmarshal(first.lastFrame(), &frame)).To(Succeed())
			Expect(frame["type"]).To(Equal("notification"))
		})

		It("is a logged no-op when the user has no sockets", func() {
			Expect(registry.BroadcastToUser(42, "anything")).To(Succeed())
		})

		It("evicts a socket whose write fails and keeps the rest", func() {
			healthy := &fakeSocket{}
			broken := &fakeSocket{failWrites: true}
			registry.Register(1, healthy)
			registry.Register(1, broken)

			Expect(registry.BroadcastToUser(1, "payload")).To(Succeed())

			Expect(registry.ConnectionCount(1)).To(Equal(1))
			Expect(broken.isClosed()).To(BeTrue())
			Expect(healthy.frameCount()).To(Equal(1))
		})
	})

	Describe("heartbeat sweep", func() {
		It("pings responsive sockets and keeps them", func() {
			sock := &fakeSocket{}
			registry.Register(1, sock)

			registry.sweep()
			Expect(sock.pings).To(Equal(1))
			Expect(registry.ConnectionCount(1)).To(Equal(1))

			// The pong arrives before the next sweep.
			Expect(sock.pongHandler("")).To(Succeed())
			registry.sweep()
			Expect(registry.ConnectionCount(1)).To(Equal(1))
		})

		It("terminates a socket that missed the previous pong", func() {
			sock := &fakeSocket{}
			registry.Register(1, sock)

			registry.sweep()
			registry.sweep()

			Expect(registry.ConnectionCount(1)).To(BeZero())
			Expect(sock.isClosed()).To(BeTrue())
		})

		It("only evicts the silent socket, not its siblings", func() {
			silent := &fakeSocket{}
			chatty := &fakeSocket{}
			registry.Register(1, silent)
			registry.Register(1, chatty)

			registry.sweep()
			Expect(chatty.pongHandler("")).To(Succeed())
			registry.sweep()

			Expect(registry.ConnectionCount(1)).To(Equal(1))
			Expect(silent.isClosed()).To(BeTrue())
			Expect(chatty.isClosed()).To(BeFalse())
		})
	})

	Describe("Unregister", func() {
		It("closes the socket and drops the user entry when empty", func() {
			sock := &fakeSocket{}
			conn := registry.Register(1, sock)

			registry.Unregister(conn)

			Expect(sock.isClosed()).To(BeTrue())
			Expect(registry.ConnectionCount(1)).To(BeZero())
		})
	})
})
