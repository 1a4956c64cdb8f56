package repositories

import "context"

// DraftStorage is a durable key-value store backing the draft service.
// Implementations must treat a missing key as ("", nil) on Get.
type DraftStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
