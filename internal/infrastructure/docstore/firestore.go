package docstore

import (
	"context"
	"fmt"

	"momentum/internal/domain/entity"

	"cloud.google.com/go/firestore"
)

// FirestoreStore writes documents to a Firestore database.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore opens a client on the named database using ambient credentials.
func NewFirestoreStore(ctx context.Context, projectID, databaseID string) (*FirestoreStore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client for %s/%s: %w", projectID, databaseID, err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, key string, pair entity.ResolvedPair) error {
	if _, err := s.client.Collection(collection).Doc(key).Set(ctx, pair.Fields()); err != nil {
		return fmt.Errorf("firestore set %s/%s: %w", collection, key, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
