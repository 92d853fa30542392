package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

const (
	writeWait      = 10 * time.Second
	clientSendSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API already allows any origin; the stream is read-only.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Event is one message on the websocket result stream.
type Event struct {
	Type    string              `json:"type"` // "result" or "cycle_finished"
	CycleID uint64              `json:"cycle_id"`
	Result  *models.ProbeResult `json:"result,omitempty"`
	State   models.CycleState   `json:"state,omitempty"`
}

// Hub fans the engine's result stream out to websocket clients. It
// implements monitor.ResultSink; a client that cannot keep up is dropped
// rather than backpressuring the scan.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
	}
}

// ServeWS upgrades the request and streams events until the client
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, clientSendSize),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.writePump(c)
	go h.readPump(c)
}

// Publish implements monitor.ResultSink.
func (h *Hub) Publish(cycleID uint64, result models.ProbeResult) {
	h.broadcast(Event{
		Type:    "result",
		CycleID: cycleID,
		Result:  &result,
	})
}

// CycleFinished implements monitor.ResultSink.
func (h *Hub) CycleFinished(cycleID uint64, state models.CycleState) {
	h.broadcast(Event{
		Type:    "cycle_finished",
		CycleID: cycleID,
		State:   state,
	})
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal websocket event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Slow client: drop it instead of blocking the cycle.
			close(c.send)
			delete(h.clients, c)
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) writePump(c *client) {
	defer func() {
		if err := c.conn.Close(); err != nil {
			log.Printf("Error closing websocket: %v", err)
		}
	}()

	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}

	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump discards inbound frames; the stream is one-way. Reading is still
// required so close and ping frames are processed.
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}
