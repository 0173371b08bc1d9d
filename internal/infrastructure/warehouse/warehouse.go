// Package warehouse appends snapshot rows to an analytical store.
package warehouse

import (
	"context"
	"fmt"

	"momentum/internal/app/port"
	"momentum/internal/config"
)

var (
	_ port.Warehouse = (*BigQueryWarehouse)(nil)
	_ port.Warehouse = (*ClickHouseWarehouse)(nil)
	_ port.Warehouse = (*MemoryWarehouse)(nil)
)

// New opens the warehouse selected by cfg.Warehouse.Driver.
func New(ctx context.Context, cfg *config.Config) (port.Warehouse, error) {
	switch cfg.Warehouse.Driver {
	case config.DriverBigQuery:
		return NewBigQueryWarehouse(ctx, cfg.GCP.ServiceAccountInfo, cfg.Warehouse.Dataset, cfg.Warehouse.Table)
	case config.DriverClickHouse:
		return NewClickHouseWarehouse(ctx, cfg.Warehouse.ClickHouseDSN, cfg.Warehouse.Dataset, cfg.Warehouse.Table)
	case config.DriverMemory:
		return NewMemoryWarehouse(), nil
	default:
		return nil, fmt.Errorf("unknown warehouse driver %q", cfg.Warehouse.Driver)
	}
}
