package http

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ukkpower/Netflix-Trivia/internal/domain"
)

// Hub tracks live websocket connections and implements app.Messenger.
// Each connection gets an opaque identifier and a buffered send channel
// drained by a single writer goroutine, so notifications and request
// replies never write to the socket concurrently.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]chan domain.Event
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]chan domain.Event)}
}

// Register wires a websocket connection into the hub and starts its
// writer pump. The returned cleanup must run when the connection ends.
func (h *Hub) Register(conn *websocket.Conn) (string, func()) {
	id := uuid.NewString()
	send := make(chan domain.Event, 16)

	h.mu.Lock()
	h.conns[id] = send
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range send {
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("ws write to %s: %v", id, err)
				return
			}
		}
	}()

	cleanup := func() {
		h.mu.Lock()
		delete(h.conns, id)
		close(send)
		h.mu.Unlock()
		<-done
	}
	return id, cleanup
}

// Send queues an event for one connection. Events for unknown or gone
// connections are dropped; a full queue sheds the oldest event so a slow
// client never blocks room processing. The read lock is held across the
// non-blocking enqueue so cleanup cannot close the channel mid-send.
func (h *Hub) Send(connectionID string, event domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	send, ok := h.conns[connectionID]
	if !ok {
		return
	}
	select {
	case send <- event:
	default:
		select {
		case <-send:
		default:
		}
		select {
		case send <- event:
		default:
		}
	}
}
