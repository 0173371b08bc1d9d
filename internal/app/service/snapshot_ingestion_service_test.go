package service

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "momentum/internal/domain/entity"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ingestionNow = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

func daysAgo(days int) string {
	return ingestionNow.Add(-time.Duration(days) * 24 * time.Hour).Format(time.RFC3339)
}

func TestIngestionRun_LoadsRecentPairs(t *testing.T) {
	prices := &fakePriceClient{raw: map[string][]byte{
		"arbitrum/0xabc": []byte(`{"pairs":[
			{"pairAddress":"0xabc","url":"https://dexscreener.com/arbitrum/0xabc","baseToken":{"name":"Foo"},"priceUsd":"1.5"},
			{"pairAddress":"0xabd","url":"https://dexscreener.com/arbitrum/0xabd","baseToken":{"name":"Foo2"},"priceUsd":"2.5"}
		]}`),
	}}
	warehouse := &fakeWarehouse{}
	pairs := staticPairs{
		{Chain: "arbitrum", Address: "0xabc", TimeAdded: daysAgo(59)},
		{Chain: "eth", Address: "0xold", TimeAdded: daysAgo(61)},
	}

	svc := NewSnapshotIngestionService(pairs, prices, warehouse, zap.NewNop(), fixedClock(ingestionNow))
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, domain.IngestionSummary{Considered: 2, SkippedWindow: 1, Loaded: 1, Rows: 2}, summary)
	require.Equal(t, []string{"arbitrum/0xabc"}, prices.called)
	require.Len(t, warehouse.loads, 1)

	rows := warehouse.loads[0]
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.NotContains(t, row, "url")
		require.Equal(t, ingestionNow, row[domain.ColumnTimestamp])
	}
	require.Equal(t, 1.5, rows[0][domain.ColumnPriceUsd])
}

func TestIngestionRun_WindowBoundaryExcluded(t *testing.T) {
	prices := &fakePriceClient{}
	warehouse := &fakeWarehouse{}
	pairs := staticPairs{{Chain: "eth", Address: "0x1", TimeAdded: daysAgo(60)}}

	svc := NewSnapshotIngestionService(pairs, prices, warehouse, zap.NewNop(), fixedClock(ingestionNow))
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.SkippedWindow)
	require.Empty(t, prices.called)
	require.Empty(t, warehouse.loads)
}

func TestIngestionRun_EmptyPairsSkipped(t *testing.T) {
	prices := &fakePriceClient{raw: map[string][]byte{"eth/0x1": []byte(`{"schemaVersion":"1.0.0","pairs":null}`)}}
	warehouse := &fakeWarehouse{}
	pairs := staticPairs{{Chain: "eth", Address: "0x1", TimeAdded: daysAgo(1)}}

	svc := NewSnapshotIngestionService(pairs, prices, warehouse, zap.NewNop(), fixedClock(ingestionNow))
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Empty)
	require.Empty(t, warehouse.loads)
}

func TestIngestionRun_FetchFailureAborts(t *testing.T) {
	prices := &fakePriceClient{
		errs: map[string]error{"eth/0x1": errors.New("failed to fetch data from http://x: status code 429")},
		raw:  map[string][]byte{"eth/0x2": []byte(`{"pairs":[{"baseToken":{"name":"B"}}]}`)},
	}
	warehouse := &fakeWarehouse{}
	pairs := staticPairs{
		{Chain: "eth", Address: "0x1", TimeAdded: daysAgo(1)},
		{Chain: "eth", Address: "0x2", TimeAdded: daysAgo(1)},
	}

	svc := NewSnapshotIngestionService(pairs, prices, warehouse, zap.NewNop(), fixedClock(ingestionNow))
	_, err := svc.Run(context.Background())
	require.ErrorContains(t, err, "status code 429")
	require.Equal(t, []string{"eth/0x1"}, prices.called)
	require.Empty(t, warehouse.loads)
}

func TestIngestionRun_MissingNameAborts(t *testing.T) {
	prices := &fakePriceClient{raw: map[string][]byte{"eth/0x1": []byte(`{"pairs":[{"pairAddress":"0x1","baseToken":{}}]}`)}}
	warehouse := &fakeWarehouse{}
	pairs := staticPairs{{Chain: "eth", Address: "0x1", TimeAdded: daysAgo(1)}}

	svc := NewSnapshotIngestionService(pairs, prices, warehouse, zap.NewNop(), fixedClock(ingestionNow))
	_, err := svc.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingName)
	require.Empty(t, warehouse.loads)
}

func TestIngestionRun_WarehouseFailure(t *testing.T) {
	prices := &fakePriceClient{raw: map[string][]byte{"eth/0x1": []byte(`{"pairs":[{"baseToken":{"name":"A"}}]}`)}}
	warehouse := &fakeWarehouse{err: errors.New("quota exceeded")}
	pairs := staticPairs{{Chain: "eth", Address: "0x1", TimeAdded: daysAgo(1)}}

	svc := NewSnapshotIngestionService(pairs, prices, warehouse, zap.NewNop(), fixedClock(ingestionNow))
	summary, err := svc.Run(context.Background())
	require.ErrorContains(t, err, "quota exceeded")
	require.Zero(t, summary.Loaded)
}

func TestIngestionRun_InvalidTimeAdded(t *testing.T) {
	pairs := staticPairs{{Chain: "eth", Address: "0x1", TimeAdded: "yesterday"}}
	svc := NewSnapshotIngestionService(pairs, &fakePriceClient{}, &fakeWarehouse{}, zap.NewNop(), fixedClock(ingestionNow))
	_, err := svc.Run(context.Background())
	require.ErrorContains(t, err, "invalid timeAdded")
}
