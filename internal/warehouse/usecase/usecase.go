package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

type warehouseUseCase struct {
	repo     warehouse.Repository
	clusters cluster.Repository
	logger   *zap.Logger
}

func NewWarehouseUseCase(repo warehouse.Repository, clusters cluster.Repository, log *zap.Logger) warehouse.UseCase {
	return &warehouseUseCase{
		repo:     repo,
		clusters: clusters,
		logger:   log,
	}
}

func (uc *warehouseUseCase) CreateWarehouse(ctx context.Context, principal auth.Principal, input *dto.CreateWarehouseInput) (*model.Warehouse, error) {
	if err := auth.RequireRole(principal, model.UserTypeAdmin, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	warehouseType := model.WarehouseType(input.Type)
	if warehouseType != model.WarehouseTypeBonded && warehouseType != model.WarehouseTypeHolding {
		return nil, apperror.Newf(apperror.KindInvalidInput, "invalid warehouse type %q", input.Type)
	}

	now := time.Now()
	w := &model.Warehouse{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:            warehouseType,
		Name:            input.Name,
		Location:        input.Location,
		CreatedBy:       principal.ID,
		Capacity:        input.Capacity,
		ManagerAssigned: input.ManagerAssigned,
		Commodities:     model.CommodityBatchList{},
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *warehouseUseCase) UpdateWarehouse(ctx context.Context, principal auth.Principal, warehouseID string, input *dto.UpdateWarehouseInput) (*model.Warehouse, error) {
	if err := auth.RequireRole(principal, model.UserTypeAdmin, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	w, err := uc.repo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.NotFound("warehouse does not exist")
	}

	if input.Name != "" {
		w.Name = input.Name
	}
	if input.Type != "" {
		warehouseType := model.WarehouseType(input.Type)
		if warehouseType != model.WarehouseTypeBonded && warehouseType != model.WarehouseTypeHolding {
			return nil, apperror.Newf(apperror.KindInvalidInput, "invalid warehouse type %q", input.Type)
		}
		w.Type = warehouseType
	}
	if input.Location != "" {
		w.Location = input.Location
	}
	w.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *warehouseUseCase) DeleteWarehouse(ctx context.Context, principal auth.Principal, warehouseID string) error {
	if err := auth.RequireRole(principal, model.UserTypeAdmin, model.UserTypeGemAdmin); err != nil {
		return err
	}

	w, err := uc.repo.FindByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return apperror.NotFound("warehouse does not exist")
	}

	attached, err := uc.clusters.CountByWarehouse(ctx, warehouseID)
	if err != nil {
		return err
	}
	if attached > 0 {
		return apperror.Conflict("clusters are attached to warehouse")
	}

	return uc.repo.Delete(ctx, warehouseID)
}

func (uc *warehouseUseCase) GetWarehouse(ctx context.Context, warehouseID string) (*dto.WarehouseDetail, error) {
	w, err := uc.repo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.NotFound("warehouse does not exist")
	}

	clusters, err := uc.clusters.FindByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	return &dto.WarehouseDetail{Warehouse: *w, Clusters: clusters}, nil
}

func (uc *warehouseUseCase) ListWarehouses(ctx context.Context, filters *dto.WarehouseFilters) ([]model.Warehouse, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *warehouseUseCase) AddCommodityBatch(ctx context.Context, warehouseID string, input *dto.AddBatchInput) (*model.CommodityBatch, error) {
	w, err := uc.repo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.NotFound("warehouse does not exist")
	}

	inventoryType := model.InventoryType(input.InventoryType)
	if inventoryType == "" {
		inventoryType = model.InventoryTypeStorage
	}

	batch := model.CommodityBatch{
		Commodity:     input.Commodity,
		BatchID:       uuid.New().String(),
		Quantity:      input.Quantity,
		Entry:         time.Now(),
		ClusterName:   input.ClusterName,
		InventoryType: inventoryType,
		Order:         input.Order,
		PricePerTonne: input.PricePerTonne,
	}
	if err := uc.repo.AppendCommodityBatch(ctx, warehouseID, batch); err != nil {
		return nil, err
	}

	uc.logger.Info("commodity batch received into warehouse",
		zap.String("warehouse_id", warehouseID),
		zap.String("batch_id", batch.BatchID),
		zap.String("commodity", batch.Commodity),
		zap.Float64("quantity", batch.Quantity))

	return &batch, nil
}
