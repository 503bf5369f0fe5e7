package cluster

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Cluster, error)
	FindByCode(ctx context.Context, clusterCode string) (*model.Cluster, error)
	FindAll(ctx context.Context, filters *dto.ClusterFilters) ([]model.Cluster, int, error)
	ExistsByNameAndLocation(ctx context.Context, name, location string) (bool, error)
	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
	FindByWarehouse(ctx context.Context, warehouseID string) ([]model.Cluster, error)

	// Create and Update persist the full document, derived fields included.
	// Callers are expected to have run RecomputeCapacity first. Create maps
	// unique-constraint violations (cluster_code, slug) to a Conflict error so
	// the code generator can retry.
	Create(ctx context.Context, c *model.Cluster) error
	Update(ctx context.Context, c *model.Cluster) error
	Delete(ctx context.Context, id string) error
}
