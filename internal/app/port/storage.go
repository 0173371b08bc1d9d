package port

import (
	"context"

	domain "momentum/internal/domain/entity"
)

// DocumentStore persists resolved pairs as keyed documents.
type DocumentStore interface {
	// Set writes the document at collection/key, replacing any existing one.
	Set(ctx context.Context, collection, key string, pair domain.ResolvedPair) error
	Close() error
}

// Warehouse appends snapshot rows to an analytical table.
type Warehouse interface {
	// Load appends rows in one bulk operation and returns once it has completed.
	Load(ctx context.Context, rows []domain.SnapshotRow) error
	Close() error
}

// TrackedPairProvider yields the statically configured pairs of the ingestion job.
type TrackedPairProvider interface {
	GetTrackedPairs() ([]domain.TrackedPair, error)
}
