// Package commodity is the producer upload loop: physical deliveries recorded
// against a request, held at a warehouse until quality check.
package commodity

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.UploadedCommodity, error)
	FindByUser(ctx context.Context, userID string) ([]model.UploadedCommodity, error)
	FindByCluster(ctx context.Context, clusterID string) ([]model.UploadedCommodity, error)
	Create(ctx context.Context, c *model.UploadedCommodity) error
	SetStatus(ctx context.Context, id string, status model.UploadedCommodityStatus) (*model.UploadedCommodity, error)
}
