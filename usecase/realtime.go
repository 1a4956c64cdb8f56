package usecase

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ikunnect/agentdesk/domain/entities"
)

const (
	maxNotifications    = 10
	notificationTTL     = 10 * time.Second
	metricsTickInterval = 5 * time.Second
)

// QueueMetricsSimulator produces a random-walk stream of queue snapshots for
// the dashboard until real CRM metrics are wired in. Each tick nudges every
// counter by -1, 0, or +1 within its floor.
type QueueMetricsSimulator struct {
	mu      sync.Mutex
	current entities.QueueMetrics
	rng     *rand.Rand
}

// NewQueueMetricsSimulator seeds the simulator with a starting snapshot.
func NewQueueMetricsSimulator(initial entities.QueueMetrics) *QueueMetricsSimulator {
	return &QueueMetricsSimulator{
		current: initial,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// TickInterval returns how often Advance should be called.
func (s *QueueMetricsSimulator) TickInterval() time.Duration {
	return metricsTickInterval
}

// Snapshot returns the current metrics.
func (s *QueueMetricsSimulator) Snapshot() entities.QueueMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Advance performs one random-walk step and returns the new snapshot.
func (s *QueueMetricsSimulator) Advance() entities.QueueMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.InQueue = max(0, s.current.InQueue+s.step())
	s.current.Active = max(0, s.current.Active+s.step())
	s.current.Inactive = max(0, s.current.Inactive+s.step())
	s.current.AgentsAvailable = min(10, max(1, s.current.AgentsAvailable+s.step()))
	s.current.TotalChats = s.current.InQueue + s.current.Active + s.current.Inactive
	return s.current
}

func (s *QueueMetricsSimulator) step() int {
	return s.rng.Intn(3) - 1
}

// NotificationCenter keeps the most recent chat notifications for an agent,
// newest first, capped at ten. Notifications expire after ten seconds.
type NotificationCenter struct {
	mu            sync.Mutex
	notifications []entities.ChatNotification
	now           func() time.Time
}

// NewNotificationCenter creates an empty notification center.
func NewNotificationCenter() *NotificationCenter {
	return &NotificationCenter{now: time.Now}
}

// Add records a new notification and returns it.
func (c *NotificationCenter) Add(chatID, customerName, message string) entities.ChatNotification {
	notification := entities.ChatNotification{
		ID:           uuid.NewString(),
		ChatID:       chatID,
		CustomerName: customerName,
		Message:      message,
		Timestamp:    c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	c.notifications = append([]entities.ChatNotification{notification}, c.notifications...)
	if len(c.notifications) > maxNotifications {
		c.notifications = c.notifications[:maxNotifications]
	}
	return notification
}

// List returns unexpired notifications, newest first.
func (c *NotificationCenter) List() []entities.ChatNotification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	out := make([]entities.ChatNotification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// MarkRead flags a notification as read. Unknown IDs are ignored.
func (c *NotificationCenter) MarkRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notifications {
		if c.notifications[i].ID == id {
			c.notifications[i].Read = true
			return
		}
	}
}

// UnreadCount returns the number of unexpired unread notifications.
func (c *NotificationCenter) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune()

	count := 0
	for _, n := range c.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// ClearAll removes every notification.
func (c *NotificationCenter) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = nil
}

// prune drops expired notifications. Callers must hold the lock.
func (c *NotificationCenter) prune() {
	cutoff := c.now().Add(-notificationTTL)
	kept := c.notifications[:0]
	for _, n := range c.notifications {
		if n.Timestamp.After(cutoff) {
			kept = append(kept, n)
		}
	}
	c.notifications = kept
}

// AgentStatusTracker records an agent's availability and how long they have
// been in the current status.
type AgentStatusTracker struct {
	mu      sync.Mutex
	status  entities.AgentStatus
	since   time.Time
	now     func() time.Time
}

// NewAgentStatusTracker starts the agent as available.
func NewAgentStatusTracker() *AgentStatusTracker {
	t := &AgentStatusTracker{now: time.Now}
	t.status = entities.AgentStatusAvailable
	t.since = t.now()
	return t
}

// Status returns the current status.
func (t *AgentStatusTracker) Status() entities.AgentStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// SetStatus changes the status and resets the duration counter.
func (t *AgentStatusTracker) SetStatus(status entities.AgentStatus) error {
	if !status.Valid() {
		return &entities.ValidationError{Field: "status", Message: fmt.Sprintf("unknown agent status %q", status)}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
	t.since = t.now()
	return nil
}

// StatusDuration returns how long the agent has held the current status,
// formatted as "m:ss" or "h:mm:ss".
func (t *AgentStatusTracker) StatusDuration() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	seconds := int64(t.now().Sub(t.since) / time.Second)
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
