package cache

import (
	"sync"

	"github.com/ikunnect/agentdesk/domain/entities"
)

// DefaultCapacity bounds the translation cache unless configured otherwise.
const DefaultCapacity = 1000

// FIFO is a bounded translation cache with insertion-order eviction. When the
// cache is full the entry inserted longest ago is evicted, regardless of how
// recently it was read. Safe for concurrent use; a concurrent Put for the
// same key is last-write-wins.
type FIFO struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*entities.TranslationResult
	order    []string
}

// NewFIFO creates a cache bounded to the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewFIFO(capacity int) *FIFO {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FIFO{
		capacity: capacity,
		entries:  make(map[string]*entities.TranslationResult, capacity),
	}
}

// Get returns the cached result for key, if present. The returned value is a
// copy so callers cannot mutate the cached entry.
func (c *FIFO) Get(key string) (*entities.TranslationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	result := *entry
	return &result, true
}

// Put stores a copy of value under key, evicting the oldest-inserted entry if
// the cache is at capacity. Overwriting an existing key keeps its original
// position in the insertion order.
func (c *FIFO) Put(key string, value *entities.TranslationResult) {
	if value == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *value
	if _, exists := c.entries[key]; exists {
		c.entries[key] = &stored
		return
	}

	if len(c.entries) >= c.capacity && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &stored
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *FIFO) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *FIFO) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entities.TranslationResult, c.capacity)
	c.order = nil
}
