package usecase

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ikunnect/agentdesk/domain/repositories"
)

// DraftService keeps per-conversation unsent message text so it survives
// view switches. Writes go to an in-memory map and, best-effort, to durable
// storage; a storage failure degrades to memory-only without surfacing an
// error, since drafts are acceptable to lose.
type DraftService struct {
	mu      sync.RWMutex
	drafts  map[string]string
	storage repositories.DraftStorage
	logger  *zap.Logger
}

// NewDraftService creates a draft service on top of the given durable store.
func NewDraftService(storage repositories.DraftStorage, logger *zap.Logger) *DraftService {
	return &DraftService{
		drafts:  make(map[string]string),
		storage: storage,
		logger:  logger,
	}
}

// Save stores the draft for a conversation. Empty or whitespace-only text
// clears the draft instead.
func (s *DraftService) Save(ctx context.Context, chatID, text string) {
	if strings.TrimSpace(text) == "" {
		s.Clear(ctx, chatID)
		return
	}

	s.mu.Lock()
	s.drafts[chatID] = text
	s.mu.Unlock()

	if err := s.storage.Set(ctx, draftKey(chatID), text); err != nil {
		s.logger.Warn("Failed to persist draft, keeping in memory only",
			zap.String("chatID", chatID),
			zap.Error(err))
	}
}

// Get returns the draft for a conversation: memory first, then durable
// storage, then empty string.
func (s *DraftService) Get(ctx context.Context, chatID string) string {
	s.mu.RLock()
	text, ok := s.drafts[chatID]
	s.mu.RUnlock()
	if ok {
		return text
	}

	stored, err := s.storage.Get(ctx, draftKey(chatID))
	if err != nil {
		s.logger.Warn("Failed to read draft from storage",
			zap.String("chatID", chatID),
			zap.Error(err))
		return ""
	}
	return stored
}

// Clear removes the draft from memory and durable storage.
func (s *DraftService) Clear(ctx context.Context, chatID string) {
	s.mu.Lock()
	delete(s.drafts, chatID)
	s.mu.Unlock()

	if err := s.storage.Remove(ctx, draftKey(chatID)); err != nil {
		s.logger.Warn("Failed to remove draft from storage",
			zap.String("chatID", chatID),
			zap.Error(err))
	}
}

// HasDraft reports whether a non-empty draft exists for the conversation.
func (s *DraftService) HasDraft(ctx context.Context, chatID string) bool {
	return s.Get(ctx, chatID) != ""
}

func draftKey(chatID string) string {
	return "chat_draft_" + chatID
}
