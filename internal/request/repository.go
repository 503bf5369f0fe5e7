package request

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/request/dto"
)

// Repository covers requests and their per-producer assignment rows.
type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Request, error)
	FindByOrder(ctx context.Context, orderID string) (*model.Request, error)
	FindBySource(ctx context.Context, sourceID, source string) ([]model.Request, error)
	Create(ctx context.Context, r *model.Request) error
	Update(ctx context.Context, r *model.Request) error

	CreateUserRequest(ctx context.Context, ur *model.UserRequest) error
	FindUserRequestByID(ctx context.Context, id string) (*model.UserRequest, error)
	FindUserRequestByRequestAndUser(ctx context.Context, requestID, userID string) (*model.UserRequest, error)
	FindUserRequests(ctx context.Context, filters *dto.UserRequestFilters) ([]model.UserRequest, error)
	UpdateUserRequest(ctx context.Context, ur *model.UserRequest) error
}
