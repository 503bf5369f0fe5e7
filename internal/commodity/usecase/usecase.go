package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/commodity"
	"github.com/byron-a/ExciteTrade-backend/internal/commodity/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/request"
	"github.com/byron-a/ExciteTrade-backend/internal/user"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse"
)

type commodityUseCase struct {
	repo       commodity.Repository
	users      user.Repository
	clusters   cluster.Repository
	requests   request.Repository
	warehouses warehouse.Repository
	logger     *zap.Logger
}

func NewCommodityUseCase(
	repo commodity.Repository,
	users user.Repository,
	clusters cluster.Repository,
	requests request.Repository,
	warehouses warehouse.Repository,
	log *zap.Logger,
) commodity.UseCase {
	return &commodityUseCase{
		repo:       repo,
		users:      users,
		clusters:   clusters,
		requests:   requests,
		warehouses: warehouses,
		logger:     log,
	}
}

func (uc *commodityUseCase) UploadCommodity(ctx context.Context, principal auth.Principal, input *dto.UploadCommodityInput) (*model.UploadedCommodity, error) {
	if err := auth.RequireRole(principal, model.UserTypeFarmer, model.UserTypeMiner); err != nil {
		return nil, err
	}

	producer, err := uc.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if producer == nil {
		return nil, apperror.NotFound("user does not exist")
	}
	detail := producer.ClusterDetail()
	if detail == nil {
		return nil, apperror.NotFound("you do not belong to a cluster")
	}
	c, err := uc.clusters.FindByCode(ctx, detail.ClusterCode)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("your cluster does not exist")
	}

	// The producer must hold an assignment on the request they deliver for.
	ur, err := uc.requests.FindUserRequestByRequestAndUser(ctx, input.RequestID, principal.ID)
	if err != nil {
		return nil, err
	}
	if ur == nil {
		return nil, apperror.NotFound("you have no assignment on this request")
	}

	w, err := uc.warehouses.FindByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, apperror.NotFound("warehouse does not exist")
	}
	if w.Type != model.WarehouseTypeHolding {
		return nil, apperror.InvalidInput("commodities can only be uploaded to a holding warehouse")
	}

	now := time.Now()
	units := input.QuantityUnits
	if units == "" {
		units = model.DefaultQuantityUnits
	}
	upload := &model.UploadedCommodity{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Cluster:       c.ID,
		Request:       input.RequestID,
		User:          principal.ID,
		Warehouse:     w.ID,
		Status:        model.UploadedCommodityStatusPending,
		Commodity:     input.Commodity,
		Quantity:      input.Quantity,
		QuantityUnits: units,
		PricePerTonne: input.PricePerTonne,
		ImageURL:      input.ImageURL,
	}
	if err := uc.repo.Create(ctx, upload); err != nil {
		return nil, err
	}

	if ur.Status.CanTransition(model.UserRequestStatusUploaded) {
		ur.Status = model.UserRequestStatusUploaded
		ur.UpdatedAt = now
		if err := uc.requests.UpdateUserRequest(ctx, ur); err != nil {
			uc.logger.Error("upload recorded but assignment status not advanced",
				zap.String("user_request_id", ur.ID), zap.Error(err))
			return nil, apperror.Wrap(apperror.KindPartialFailure,
				"commodity uploaded but the request assignment was not advanced", err)
		}
	}

	return upload, nil
}

func (uc *commodityUseCase) ListForUser(ctx context.Context, principal auth.Principal) ([]model.UploadedCommodity, error) {
	if err := auth.RequireRole(principal, model.UserTypeFarmer, model.UserTypeMiner); err != nil {
		return nil, err
	}
	return uc.repo.FindByUser(ctx, principal.ID)
}

func (uc *commodityUseCase) ListUploadedForCluster(ctx context.Context, principal auth.Principal) ([]model.UploadedCommodity, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemExcite); err != nil {
		return nil, err
	}

	agent, err := uc.users.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperror.NotFound("user does not exist")
	}
	assignment := agent.AssignedCluster()
	if assignment == nil || !assignment.Assigned {
		return nil, apperror.InvalidState("you are not assigned to a cluster")
	}
	c, err := uc.clusters.FindByCode(ctx, assignment.ClusterCode)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.Newf(apperror.KindInconsistent,
			"assigned cluster %s does not exist", assignment.ClusterCode)
	}
	return uc.repo.FindByCluster(ctx, c.ID)
}
