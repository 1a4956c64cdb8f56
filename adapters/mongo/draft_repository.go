package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ikunnect/agentdesk/domain/repositories"
)

// DraftRepository persists agent message drafts as a key-value collection so
// unsent text survives process restarts and desktop reloads.
type DraftRepository struct {
	collection *mongo.Collection
}

type draftDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewDraftRepository creates a MongoDB-backed draft store.
func NewDraftRepository(db *mongo.Database) repositories.DraftStorage {
	return &DraftRepository{
		collection: db.Collection("drafts"),
	}
}

// Get implements repositories.DraftStorage. A missing key returns ("", nil).
func (r *DraftRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	var doc draftDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get draft %s: %w", key, err)
	}
	return doc.Value, nil
}

// Set implements repositories.DraftStorage with an upsert.
func (r *DraftRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to set draft %s: %w", key, err)
	}
	return nil
}

// Remove implements repositories.DraftStorage. Removing an absent key is not
// an error.
func (r *DraftRepository) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("failed to remove draft %s: %w", key, err)
	}
	return nil
}
