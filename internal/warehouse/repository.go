package warehouse

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Warehouse, error)
	FindByIDAndType(ctx context.Context, id string, warehouseType model.WarehouseType) (*model.Warehouse, error)
	FindAll(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error)
	Create(ctx context.Context, w *model.Warehouse) error
	Update(ctx context.Context, w *model.Warehouse) error
	Delete(ctx context.Context, id string) error

	// AppendCommodityBatch adds one batch-tracked inventory entry atomically
	// on the warehouse row.
	AppendCommodityBatch(ctx context.Context, warehouseID string, batch model.CommodityBatch) error
}
