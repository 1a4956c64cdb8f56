package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/entities"
	"github.com/ikunnect/agentdesk/usecase"
)

func setupTestHub(t testing.TB) (*Hub, *usecase.NotificationCenter) {
	t.Helper()
	metrics := usecase.NewQueueMetricsSimulator(entities.QueueMetrics{
		InQueue:         3,
		Active:          7,
		Inactive:        2,
		AgentsAvailable: 5,
	})
	notifications := usecase.NewNotificationCenter()
	return NewHub(metrics, notifications, zap.NewNop()), notifications
}

func newTestClient(hub *Hub, agentID string) *Client {
	return &Client{
		hub:     hub,
		send:    make(chan []byte, 16),
		agentID: agentID,
		logger:  zap.NewNop(),
	}
}

func readEnvelope(t *testing.T, client *Client) Envelope {
	t.Helper()
	select {
	case payload := <-client.send:
		var envelope Envelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			t.Fatalf("Failed to unmarshal frame: %v", err)
		}
		return envelope
	case <-time.After(time.Second):
		t.Fatal("No frame received within timeout")
		return Envelope{}
	}
}

func TestHubRegisterSendsSnapshot(t *testing.T) {
	hub, _ := setupTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, "agent-1")
	hub.register <- client

	envelope := readEnvelope(t, client)
	if envelope.Type != "queue_metrics" {
		t.Errorf("Expected queue_metrics frame, got %q", envelope.Type)
	}

	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected metrics object, got %T", envelope.Data)
	}
	if got := data["in_queue"].(float64); got != 3 {
		t.Errorf("Expected in_queue 3, got %v", got)
	}

	if got := hub.ClientCount(); got != 1 {
		t.Errorf("Expected 1 client, got %d", got)
	}
}

func TestHubUnregisterClosesClient(t *testing.T) {
	hub, _ := setupTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, "agent-1")
	hub.register <- client
	readEnvelope(t, client)

	hub.unregister <- client

	select {
	case _, open := <-client.send:
		if open {
			t.Error("Expected send channel to be closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel not closed within timeout")
	}

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("Expected 0 clients, got %d", got)
	}
}

func TestBroadcastNotification(t *testing.T) {
	hub, notifications := setupTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, "agent-1")
	hub.register <- client
	readEnvelope(t, client) // initial snapshot

	sent := hub.BroadcastNotification("chat-9", "Maria", "Hola, necesito ayuda")
	if sent.ChatID != "chat-9" || sent.ID == "" {
		t.Errorf("Unexpected notification returned: %+v", sent)
	}

	envelope := readEnvelope(t, client)
	if envelope.Type != "chat_notification" {
		t.Errorf("Expected chat_notification frame, got %q", envelope.Type)
	}
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected notification object, got %T", envelope.Data)
	}
	if data["chat_id"] != "chat-9" || data["message"] != "Hola, necesito ayuda" {
		t.Errorf("Unexpected notification payload: %v", data)
	}

	if got := len(notifications.List()); got != 1 {
		t.Errorf("Expected notification recorded in center, got %d entries", got)
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub, _ := setupTestHub(t)

	slow := newTestClient(hub, "agent-slow")
	slow.send = make(chan []byte) // no buffer, no reader
	hub.clients[slow] = true

	done := make(chan struct{})
	go func() {
		hub.BroadcastNotification("chat-1", "Ana", "hello")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on slow client")
	}
}

func TestHubShutdownUnblocksUnregister(t *testing.T) {
	hub, _ := setupTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newTestClient(hub, "agent-1")
	hub.register <- client
	readEnvelope(t, client)

	cancel()

	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("Hub did not signal shutdown")
	}

	// A pump goroutine unregistering after shutdown must not block forever.
	released := make(chan struct{})
	go func() {
		select {
		case hub.unregister <- client:
		case <-hub.done:
		}
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after hub shutdown")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub, _ := setupTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	logger := zap.NewNop()
	e := echo.New()
	e.GET("/ws", func(c echo.Context) error {
		return HandleWebSocket(hub, c, "agent-1", logger)
	})

	server := httptest.NewServer(e)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket connection failed: %v", err)
	}
	defer ws.Close()

	// The first frame is the metrics snapshot pushed on registration.
	ws.SetReadDeadline(time.Now().Add(time.Second))
	var envelope Envelope
	if err := ws.ReadJSON(&envelope); err != nil {
		t.Fatalf("Failed to read initial frame: %v", err)
	}
	if envelope.Type != "queue_metrics" {
		t.Errorf("Expected queue_metrics frame, got %q", envelope.Type)
	}
}
