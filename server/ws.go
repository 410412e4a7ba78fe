package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/umputun/inspo/pkg/domain"
)

// websocket message types pushed to live feed clients
const (
	msgItemInserted = "item_inserted"
	msgItemUpdated  = "item_updated"
)

// wsMessage is one live-update frame
type wsMessage struct {
	Type string           `json:"type"`
	Data *domain.FeedItem `json:"data"`
}

// hub maintains the set of connected websocket clients and fans reconciled
// feed rows out to them. Slow clients are dropped rather than blocking the
// broadcast path.
type hub struct {
	clients    map[*wsClient]bool
	broadcast  chan wsMessage
	register   chan *wsClient
	unregister chan *wsClient
	mu         sync.RWMutex
}

type wsClient struct {
	conn *websocket.Conn
	send chan wsMessage
}

func newHub() *hub {
	return &hub{
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan wsMessage, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
	}
}

// run processes client lifecycle and broadcast until ctx is canceled
func (h *hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[DEBUG] websocket client connected, total %d", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[DEBUG] websocket client disconnected, total %d", h.clientCount())

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- msg:
				default: // client can't keep up, drop it
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// broadcastItem queues one reconciled row for all clients, dropping the
// message if the broadcast buffer is full
func (h *hub) broadcastItem(msgType string, item *domain.FeedItem) {
	select {
	case h.broadcast <- wsMessage{Type: msgType, Data: item}:
	default:
		log.Printf("[WARN] broadcast channel full, dropping %s for %s", msgType, item.ID)
	}
}

func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 50 * time.Second
	wsPongWait   = 60 * time.Second
)

// wsHandler upgrades the connection and attaches the client to the hub
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] websocket upgrade failed: %v", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan wsMessage, 64)}
	s.hub.register <- client

	go client.writePump()
	go client.readPump(s.hub)
}

// writePump pushes queued messages and pings to the peer
func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames and detects the peer going away
func (c *wsClient) readPump(h *hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
