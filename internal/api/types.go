package api

import (
	"time"

	"github.com/ikunnect/agentdesk/domain/entities"
)

// AgentLoginRequest represents the request payload for agent authentication
type AgentLoginRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}

// AgentLoginResponse represents the response payload for agent authentication
type AgentLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AgentID   string    `json:"agent_id"`
}

// TranslateRequest represents a single translation request
type TranslateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	Provider       string `json:"provider,omitempty"`
}

// TranslateMessageRequest asks for one message translated into several
// target languages at once
type TranslateMessageRequest struct {
	Text            string   `json:"text"`
	SourceLanguage  string   `json:"source_language"`
	TargetLanguages []string `json:"target_languages"`
}

// DetectRequest represents a language detection request
type DetectRequest struct {
	Text     string `json:"text"`
	Provider string `json:"provider,omitempty"`
}

// ProvidersResponse lists registered providers and the active default
type ProvidersResponse struct {
	Providers []string `json:"providers"`
	Default   string   `json:"default"`
}

// SetDefaultProviderRequest selects the process-wide default provider
type SetDefaultProviderRequest struct {
	Provider string `json:"provider"`
}

// DraftRequest carries draft text for a conversation
type DraftRequest struct {
	Text string `json:"text"`
}

// DraftResponse returns the stored draft for a conversation
type DraftResponse struct {
	ChatID   string `json:"chat_id"`
	Text     string `json:"text"`
	HasDraft bool   `json:"has_draft"`
}

// TimerResponse reports response-time state for a conversation
type TimerResponse struct {
	ChatID           string `json:"chat_id"`
	Active           bool   `json:"active"`
	LastMs           int64  `json:"last_ms"`
	AverageMs        int64  `json:"average_ms"`
	AverageFormatted string `json:"average_formatted"`
}

// RankRequest carries the conversations to order
type RankRequest struct {
	Conversations []entities.ConversationSummary `json:"conversations"`
}

// RankedConversation pairs a conversation with its display style
type RankedConversation struct {
	entities.ConversationSummary
	Style entities.PriorityStyle `json:"style"`
}

// AgentStatusRequest changes the agent's availability
type AgentStatusRequest struct {
	Status entities.AgentStatus `json:"status"`
}

// AgentStatusResponse reports the agent's availability
type AgentStatusResponse struct {
	Status   entities.AgentStatus `json:"status"`
	Duration string               `json:"duration"`
}

// NotifyRequest announces a customer message to connected desktops
type NotifyRequest struct {
	ChatID       string `json:"chat_id"`
	CustomerName string `json:"customer_name"`
	Message      string `json:"message"`
}

// NotificationsResponse lists current notifications
type NotificationsResponse struct {
	Notifications []entities.ChatNotification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
