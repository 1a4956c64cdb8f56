package entities

import "time"

// ChatPriority represents the urgency of a conversation in the agent queue.
type ChatPriority string

const (
	ChatPriorityUrgent ChatPriority = "urgent"
	ChatPriorityHigh   ChatPriority = "high"
	ChatPriorityMedium ChatPriority = "medium"
	ChatPriorityLow    ChatPriority = "low"
)

// PriorityStyle is the display styling for a priority badge.
type PriorityStyle struct {
	Color           string `json:"color"`
	BackgroundColor string `json:"background_color"`
	Label           string `json:"label"`
}

// ConversationSummary is the slice of a conversation the queue view ranks by.
type ConversationSummary struct {
	ID           string       `json:"id"`
	CustomerName string       `json:"customer_name,omitempty"`
	Priority     ChatPriority `json:"priority"`
	Timestamp    time.Time    `json:"timestamp"`
}

// QueueMetrics is a snapshot of the contact-center queue pushed to agents.
type QueueMetrics struct {
	InQueue         int `json:"in_queue"`
	Active          int `json:"active"`
	Inactive        int `json:"inactive"`
	AgentsAvailable int `json:"agents_available"`
	TotalChats      int `json:"total_chats"`
}

// ChatNotification announces a new customer message to the agent desktop.
type ChatNotification struct {
	ID           string    `json:"id"`
	ChatID       string    `json:"chat_id"`
	CustomerName string    `json:"customer_name"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Read         bool      `json:"read"`
}

// AgentStatus represents an agent's availability state.
type AgentStatus string

const (
	AgentStatusAvailable AgentStatus = "available"
	AgentStatusBusy      AgentStatus = "busy"
	AgentStatusAway      AgentStatus = "away"
	AgentStatusOffline   AgentStatus = "offline"
)

// Valid reports whether s is one of the known agent statuses.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentStatusAvailable, AgentStatusBusy, AgentStatusAway, AgentStatusOffline:
		return true
	}
	return false
}
