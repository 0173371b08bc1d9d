package port

import (
	"context"

	domain "momentum/internal/domain/entity"
)

// PairRegistrationService resolves chat-submitted pair URLs and persists them.
type PairRegistrationService interface {
	// Collection returns the document collection the service writes to.
	Collection() string
	// Register parses text, resolves each line and persists one document per pair.
	Register(ctx context.Context, text string) ([]domain.ResolvedPair, error)
}

// SnapshotIngestionService runs the tracked pair ingestion job.
type SnapshotIngestionService interface {
	Run(ctx context.Context) (domain.IngestionSummary, error)
}
