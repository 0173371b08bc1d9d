package entity

import "time"

// Column names with special handling in snapshot rows.
const (
	ColumnTimestamp   = "timestamp"
	ColumnURL         = "url"
	ColumnLabels      = "labels"
	ColumnPriceUsd    = "priceUsd"
	ColumnPriceNative = "priceNative"
	ColumnBaseName    = "baseToken_name"
)

// SnapshotRow is one flattened price API pair entry. Keys are underscore-joined paths.
type SnapshotRow map[string]any

// Name returns the base token name carried by the row.
func (r SnapshotRow) Name() string {
	name, _ := r[ColumnBaseName].(string)
	return name
}

// StampRows sets the ingestion timestamp on every row.
func StampRows(rows []SnapshotRow, now time.Time) {
	ts := now.UTC()
	for _, row := range rows {
		row[ColumnTimestamp] = ts
	}
}

// IngestionSummary reports what one ingestion run did.
type IngestionSummary struct {
	Considered    int
	SkippedWindow int
	Empty         int
	Loaded        int
	Rows          int
}
