package commodity

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/commodity/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type UseCase interface {
	// UploadCommodity records a producer's physical delivery at a holding
	// warehouse and moves their assignment to uploaded.
	UploadCommodity(ctx context.Context, principal auth.Principal, input *dto.UploadCommodityInput) (*model.UploadedCommodity, error)

	ListForUser(ctx context.Context, principal auth.Principal) ([]model.UploadedCommodity, error)

	// ListUploadedForCluster is the field agent's view of deliveries pending
	// quality check in the assigned cluster.
	ListUploadedForCluster(ctx context.Context, principal auth.Principal) ([]model.UploadedCommodity, error)
}
