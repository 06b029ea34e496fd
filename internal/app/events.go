package app

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ─────────────────────────────────────────────────────────────
// Event Hub — WebSocket fan-out of scene change events
// ─────────────────────────────────────────────────────────────

// eventMessage is the wire shape pushed to every connected renderer.
type eventMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// EventHub broadcasts scene events to WebSocket subscribers. A renderer
// connects, receives a hello frame, and then gets one frame per scene
// mutation so it can re-pull the document. It satisfies
// service.EventEmitter, so the scene service emits into it directly.
type EventHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan eventMessage
}

func NewEventHub() *EventHub {
	return &EventHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Local renderer processes only; no cross-origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[*websocket.Conn]chan eventMessage{},
	}
}

// Emit queues the event for every connected client. Slow clients drop
// frames rather than block a mutation.
func (h *EventHub) Emit(_ context.Context, event string, data any) {
	msg := eventMessage{Event: event, Data: data}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// ServeHTTP upgrades the request and streams events until the client
// disconnects.
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[events] upgrade failed: %v", err)
		return
	}

	ch := make(chan eventMessage, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()
	log.Printf("[events] client connected: %s", conn.RemoteAddr())

	go h.writePump(conn, ch)

	// Read loop only to detect disconnect; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *EventHub) writePump(conn *websocket.Conn, ch chan eventMessage) {
	hello := eventMessage{Event: "connected", Data: map[string]any{"server": "sketchboard"}}
	if err := h.write(conn, hello); err != nil {
		h.drop(conn)
		return
	}
	for msg := range ch {
		if err := h.write(conn, msg); err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *EventHub) write(conn *websocket.Conn, msg eventMessage) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(msg)
}

func (h *EventHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(ch)
	}
	h.mu.Unlock()
	if ok {
		conn.Close()
		log.Printf("[events] client disconnected: %s", conn.RemoteAddr())
	}
}

// Close disconnects all clients.
func (h *EventHub) Close() {
	h.mu.Lock()
	for conn, ch := range h.clients {
		delete(h.clients, conn)
		close(ch)
		conn.Close()
	}
	h.mu.Unlock()
}
