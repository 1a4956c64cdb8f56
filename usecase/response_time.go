package usecase

import (
	"fmt"
	"sync"
	"time"
)

// responseTimer is the per-conversation timer state.
type responseTimer struct {
	startTime time.Time
	active    bool
	last      time.Duration
	average   time.Duration
}

// ResponseTimeTracker measures how long an agent takes to answer each
// conversation. The running average is half-weighted: each new sample is
// averaged against the previous average, so recent responses count more than
// old ones.
type ResponseTimeTracker struct {
	mu     sync.Mutex
	timers map[string]*responseTimer
	now    func() time.Time
}

// NewResponseTimeTracker creates an empty tracker.
func NewResponseTimeTracker() *ResponseTimeTracker {
	return &ResponseTimeTracker{
		timers: make(map[string]*responseTimer),
		now:    time.Now,
	}
}

// Start begins (or restarts) the timer for a conversation.
func (t *ResponseTimeTracker) Start(chatID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	timer, ok := t.timers[chatID]
	if !ok {
		timer = &responseTimer{}
		t.timers[chatID] = timer
	}
	timer.startTime = t.now()
	timer.active = true
}

// Stop ends the timer for a conversation and folds the elapsed time into the
// running average. Stopping an inactive or unknown timer is a no-op.
func (t *ResponseTimeTracker) Stop(chatID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	timer, ok := t.timers[chatID]
	if !ok || !timer.active {
		return
	}

	elapsed := t.now().Sub(timer.startTime)
	timer.active = false
	timer.last = elapsed
	if timer.average > 0 {
		timer.average = (timer.average + elapsed) / 2
	} else {
		timer.average = elapsed
	}
}

// LastDuration returns the most recently measured response time, or zero.
func (t *ResponseTimeTracker) LastDuration(chatID string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[chatID]; ok {
		return timer.last
	}
	return 0
}

// Average returns the running average response time, or zero if nothing has
// been measured for the conversation.
func (t *ResponseTimeTracker) Average(chatID string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[chatID]; ok {
		return timer.average
	}
	return 0
}

// Active reports whether a timer is currently running for the conversation.
func (t *ResponseTimeTracker) Active(chatID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	timer, ok := t.timers[chatID]
	return ok && timer.active
}

// FormatDuration renders a duration as "Ns" under a minute and "Mm Ss" at or
// above it, truncating toward zero seconds.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	minutes := seconds / 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}
