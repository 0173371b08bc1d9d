package warehouse

import (
	"context"
	"fmt"
	"time"

	"momentum/internal/domain/entity"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseWarehouse stores each row as a JSON document next to the columns used for
// filtering. The price API schema is open-ended, so the remaining fields stay in payload.
type ClickHouseWarehouse struct {
	conn  driver.Conn
	table string
}

// NewClickHouseWarehouse connects using a clickhouse:// DSN and creates the table if needed.
func NewClickHouseWarehouse(ctx context.Context, dsn, database, table string) (*ClickHouseWarehouse, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	w := &ClickHouseWarehouse{conn: conn, table: database + "." + table}
	if err := w.ensureTable(ctx, database); err != nil {
		conn.Close()
		return nil, err
	}
	return w, nil
}

func (w *ClickHouseWarehouse) ensureTable(ctx context.Context, database string) error {
	if err := w.conn.Exec(ctx, "CREATE DATABASE IF NOT EXISTS "+database); err != nil {
		return fmt.Errorf("create database %s: %w", database, err)
	}
	ddl := `
		CREATE TABLE IF NOT EXISTS ` + w.table + ` (
			timestamp      DateTime64(6, 'UTC'),
			chainId        String,
			pairAddress    String,
			baseToken_name String,
			priceUsd       Nullable(Float64),
			priceNative    Nullable(Float64),
			payload        String
		) ENGINE = MergeTree
		ORDER BY (chainId, pairAddress, timestamp)
	`
	if err := w.conn.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", w.table, err)
	}
	return nil
}

// clickHouseRow is the column projection of one snapshot row.
type clickHouseRow struct {
	Timestamp   time.Time
	ChainID     string
	PairAddress string
	BaseName    string
	PriceUsd    *float64
	PriceNative *float64
	Payload     string
}

func toClickHouseRow(row entity.SnapshotRow) (clickHouseRow, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return clickHouseRow{}, fmt.Errorf("encode payload: %w", err)
	}
	out := clickHouseRow{
		ChainID:     stringColumn(row, "chainId"),
		PairAddress: stringColumn(row, "pairAddress"),
		BaseName:    row.Name(),
		PriceUsd:    floatColumn(row, entity.ColumnPriceUsd),
		PriceNative: floatColumn(row, entity.ColumnPriceNative),
		Payload:     string(payload),
	}
	if ts, ok := row[entity.ColumnTimestamp].(time.Time); ok {
		out.Timestamp = ts.UTC()
	}
	return out, nil
}

func stringColumn(row entity.SnapshotRow, col string) string {
	s, _ := row[col].(string)
	return s
}

func floatColumn(row entity.SnapshotRow, col string) *float64 {
	if f, ok := row[col].(float64); ok {
		return &f
	}
	return nil
}

// Load sends the rows as a single batch.
func (w *ClickHouseWarehouse) Load(ctx context.Context, rows []entity.SnapshotRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := w.conn.PrepareBatch(ctx, `
		INSERT INTO `+w.table+` (
			timestamp, chainId, pairAddress, baseToken_name, priceUsd, priceNative, payload
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i, row := range rows {
		r, err := toClickHouseRow(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		err = batch.Append(r.Timestamp, r.ChainID, r.PairAddress, r.BaseName, r.PriceUsd, r.PriceNative, r.Payload)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func (w *ClickHouseWarehouse) Close() error {
	return w.conn.Close()
}
