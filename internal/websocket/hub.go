package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the desktop origin once it is deployed
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Envelope wraps every server push so the desktop can dispatch on type.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of connected agent desktops and pushes queue metric
// snapshots and chat notifications to them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	metrics       *usecase.QueueMetricsSimulator
	notifications *usecase.NotificationCenter

	logger *zap.Logger
}

// NewHub creates a hub pushing the given metric stream.
func NewHub(metrics *usecase.QueueMetricsSimulator, notifications *usecase.NotificationCenter, logger *zap.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]bool),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		done:          make(chan struct{}),
		metrics:       metrics,
		notifications: notifications,
		logger:        logger,
	}
}

// Run starts the hub's main loop: client lifecycle plus the periodic metrics
// push. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.metrics.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Agent desktop connected", zap.String("agentID", client.agentID))

			// Send the current snapshot immediately so the dashboard is
			// populated before the first tick.
			client.push(Envelope{Type: "queue_metrics", Data: h.metrics.Snapshot()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("Agent desktop disconnected", zap.String("agentID", client.agentID))

		case <-ticker.C:
			h.broadcast(Envelope{Type: "queue_metrics", Data: h.metrics.Advance()})

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			// Unblocks pump goroutines still trying to unregister.
			close(h.done)
			return
		}
	}
}

// BroadcastNotification records a chat notification and pushes it to every
// connected desktop.
func (h *Hub) BroadcastNotification(chatID, customerName, message string) entities.ChatNotification {
	notification := h.notifications.Add(chatID, customerName, message)
	h.broadcast(Envelope{Type: "chat_notification", Data: notification})
	return notification
}

func (h *Hub) broadcast(envelope Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast payload", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
			// Slow consumer; drop the frame rather than block the hub.
			h.logger.Warn("Dropping frame for slow client", zap.String("agentID", client.agentID))
		}
	}
}

// ClientCount returns the number of connected desktops.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client is a middleman between a websocket connection and the hub.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	agentID string
	logger  *zap.Logger
}

func (c *Client) push(envelope Envelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		c.logger.Error("Failed to marshal payload", zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// readPump discards client frames but keeps the connection's read deadline
// fresh via pong handling.
func (c *Client) readPump() {
	defer func() {
		// The hub loop may already have exited; don't block on a send
		// nobody will receive.
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("Unexpected websocket close", zap.Error(err))
			}
			return
		}
	}
}

// writePump forwards hub frames to the connection and keeps it alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleWebSocket upgrades an authenticated request and attaches the client
// to the hub.
func HandleWebSocket(hub *Hub, c echo.Context, agentID string, logger *zap.Logger) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Failed to upgrade websocket connection", zap.Error(err))
		return err
	}

	client := &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 16),
		agentID: agentID,
		logger:  logger,
	}

	hub.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}
