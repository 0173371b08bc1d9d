package entity

import (
	"fmt"
	"time"
)

// RecencyWindow is the trailing period during which a tracked pair is still ingested.
const RecencyWindow = 60 * 24 * time.Hour

// TrackedPair is a statically configured pair the ingestion job snapshots.
type TrackedPair struct {
	Chain     string `yaml:"chain" validate:"required"`
	Address   string `yaml:"address" validate:"required"`
	TimeAdded string `yaml:"timeAdded" validate:"required"`
}

var timeAddedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// AddedAt parses TimeAdded and reads its wall clock as UTC. An explicit offset is
// dropped, not converted: "12:30+02:00" is 12:30 UTC, the way existing pairs.yaml
// entries have always been read.
func (p TrackedPair) AddedAt() (time.Time, error) {
	for _, layout := range timeAddedLayouts {
		if t, err := time.ParseInLocation(layout, p.TimeAdded, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timeAdded %q for pair %s/%s", p.TimeAdded, p.Chain, p.Address)
}

// IsRecentlyAdded reports whether addedAt lies strictly inside the recency window ending at now.
func IsRecentlyAdded(addedAt, now time.Time) bool {
	return addedAt.After(now.Add(-RecencyWindow))
}
