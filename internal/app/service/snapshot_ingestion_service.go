package service

import (
	"context"
	"fmt"
	"time"

	"momentum/internal/app/port"
	domain "momentum/internal/domain/entity"
	"momentum/internal/pkg/metrics"

	"go.uber.org/zap"
)

// IngestionSuccessMessage is returned by the job trigger after a complete run.
const IngestionSuccessMessage = "All recent data inserted successfully!"

// snapshotIngestionServiceImpl implements port.SnapshotIngestionService.
type snapshotIngestionServiceImpl struct {
	pairs     port.TrackedPairProvider
	prices    port.PriceClient
	warehouse port.Warehouse
	logger    *zap.Logger
	now       func() time.Time
}

// NewSnapshotIngestionService creates the ingestion job.
func NewSnapshotIngestionService(
	pairs port.TrackedPairProvider,
	prices port.PriceClient,
	warehouse port.Warehouse,
	logger *zap.Logger,
	now func() time.Time,
) port.SnapshotIngestionService {
	if now == nil {
		now = time.Now
	}
	return &snapshotIngestionServiceImpl{
		pairs:     pairs,
		prices:    prices,
		warehouse: warehouse,
		logger:    logger.Named("SnapshotIngestionService"),
		now:       now,
	}
}

// Run snapshots every tracked pair still inside the recency window, one entry at a
// time in configuration order. The first error aborts the run; entries loaded before
// it stay loaded.
func (s *snapshotIngestionServiceImpl) Run(ctx context.Context) (domain.IngestionSummary, error) {
	var summary domain.IngestionSummary

	tracked, err := s.pairs.GetTrackedPairs()
	if err != nil {
		return summary, fmt.Errorf("failed to load tracked pairs: %w", err)
	}
	s.logger.Info("Starting snapshot ingestion", zap.Int("trackedPairs", len(tracked)))

	for _, tp := range tracked {
		summary.Considered++

		addedAt, err := tp.AddedAt()
		if err != nil {
			return summary, err
		}
		if !domain.IsRecentlyAdded(addedAt, s.now().UTC()) {
			s.logger.Debug("Pair outside recency window, skipping",
				zap.String("chain", tp.Chain),
				zap.String("address", tp.Address),
				zap.Time("timeAdded", addedAt))
			summary.SkippedWindow++
			metrics.IngestEntries.WithLabelValues(metrics.EntrySkippedWindow).Inc()
			continue
		}

		rows, err := s.snapshot(ctx, tp)
		if err != nil {
			return summary, err
		}
		if len(rows) == 0 {
			s.logger.Warn("Price API returned no pairs, nothing to load",
				zap.String("chain", tp.Chain),
				zap.String("address", tp.Address))
			summary.Empty++
			metrics.IngestEntries.WithLabelValues(metrics.EntryEmpty).Inc()
			continue
		}

		if err := s.warehouse.Load(ctx, rows); err != nil {
			s.logger.Error("Warehouse load failed",
				zap.String("chain", tp.Chain),
				zap.String("address", tp.Address),
				zap.Int("rows", len(rows)),
				zap.Error(err))
			return summary, fmt.Errorf("failed to load snapshot of %s/%s: %w", tp.Chain, tp.Address, err)
		}

		summary.Loaded++
		summary.Rows += len(rows)
		metrics.IngestEntries.WithLabelValues(metrics.EntryLoaded).Inc()
		metrics.IngestRows.Add(float64(len(rows)))
		s.logger.Info("Snapshot loaded",
			zap.String("chain", tp.Chain),
			zap.String("address", tp.Address),
			zap.Int("rows", len(rows)))
	}

	s.logger.Info("Snapshot ingestion finished",
		zap.Int("considered", summary.Considered),
		zap.Int("skippedWindow", summary.SkippedWindow),
		zap.Int("empty", summary.Empty),
		zap.Int("loaded", summary.Loaded),
		zap.Int("rows", summary.Rows))
	return summary, nil
}

// snapshot fetches, flattens and stamps the rows of one tracked pair.
func (s *snapshotIngestionServiceImpl) snapshot(ctx context.Context, tp domain.TrackedPair) ([]domain.SnapshotRow, error) {
	payload, err := s.prices.GetPairsRaw(ctx, tp.Chain, tp.Address)
	if err != nil {
		return nil, err
	}
	rows, err := FlattenPairs(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten snapshot of %s/%s: %w", tp.Chain, tp.Address, err)
	}
	domain.StampRows(rows, s.now())
	return rows, nil
}
