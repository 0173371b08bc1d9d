package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrackedPairAddedAt(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	for _, s := range []string{
		"2024-05-01T10:30:00Z",
		"2024-05-01T10:30:00+02:00",
		"2024-05-01T10:30:00-05:00",
		"2024-05-01T10:30:00",
		"2024-05-01 10:30:00",
		"2024-05-01T10:30",
	} {
		got, err := TrackedPair{TimeAdded: s}.AddedAt()
		require.NoError(t, err, s)
		require.True(t, want.Equal(got), s)
		require.Equal(t, time.UTC, got.Location(), s)
	}

	got, err := TrackedPair{TimeAdded: "2024-05-01T12:30:00+02:00"}.AddedAt()
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)), "offset is dropped, not applied")

	got, err = TrackedPair{TimeAdded: "2024-05-01"}.AddedAt()
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))

	_, err = TrackedPair{Chain: "eth", Address: "0x1", TimeAdded: "last week"}.AddedAt()
	require.ErrorContains(t, err, "eth/0x1")
}

func TestIsRecentlyAdded(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	require.True(t, IsRecentlyAdded(now.Add(-59*day), now))
	require.False(t, IsRecentlyAdded(now.Add(-60*day), now))
	require.False(t, IsRecentlyAdded(now.Add(-61*day), now))
	require.True(t, IsRecentlyAdded(now.Add(-60*day+time.Second), now))
	require.True(t, IsRecentlyAdded(now, now))
}

func TestStampRows(t *testing.T) {
	rows := []SnapshotRow{{ColumnBaseName: "A"}, {ColumnBaseName: "B"}}
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.FixedZone("X", 3600))
	StampRows(rows, now)
	for _, r := range rows {
		require.Equal(t, now.UTC(), r[ColumnTimestamp])
	}
	require.Equal(t, "A", rows[0].Name())
}
