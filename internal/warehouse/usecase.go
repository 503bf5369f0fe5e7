package warehouse

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

type UseCase interface {
	CreateWarehouse(ctx context.Context, principal auth.Principal, input *dto.CreateWarehouseInput) (*model.Warehouse, error)
	UpdateWarehouse(ctx context.Context, principal auth.Principal, warehouseID string, input *dto.UpdateWarehouseInput) (*model.Warehouse, error)
	// DeleteWarehouse is blocked while any cluster references the warehouse.
	DeleteWarehouse(ctx context.Context, principal auth.Principal, warehouseID string) error
	GetWarehouse(ctx context.Context, warehouseID string) (*dto.WarehouseDetail, error)
	ListWarehouses(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error)

	// AddCommodityBatch records a quality-checked intake into the warehouse's
	// batch-tracked inventory.
	AddCommodityBatch(ctx context.Context, warehouseID string, input *dto.AddBatchInput) (*model.CommodityBatch, error)
}
