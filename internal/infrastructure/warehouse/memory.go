package warehouse

import (
	"context"
	"sync"

	"momentum/internal/domain/entity"
)

// MemoryWarehouse records loaded batches in memory.
type MemoryWarehouse struct {
	mu      sync.Mutex
	batches [][]entity.SnapshotRow
}

// NewMemoryWarehouse creates an empty MemoryWarehouse.
func NewMemoryWarehouse() *MemoryWarehouse {
	return &MemoryWarehouse{}
}

func (w *MemoryWarehouse) Load(_ context.Context, rows []entity.SnapshotRow) error {
	if len(rows) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batches = append(w.batches, append([]entity.SnapshotRow(nil), rows...))
	return nil
}

// Batches returns the loaded batches in load order.
func (w *MemoryWarehouse) Batches() [][]entity.SnapshotRow {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([][]entity.SnapshotRow(nil), w.batches...)
}

func (w *MemoryWarehouse) Close() error { return nil }
