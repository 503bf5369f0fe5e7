package request

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/request/dto"
)

// UseCase drives requests through producer assignment and the status
// pipelines.
type UseCase interface {
	// CreateRequest opens the workflow unit for an order against its source
	// (cluster for the field-agent flow, warehouse for the storekeeper flow).
	// Called once per order at checkout time.
	CreateRequest(ctx context.Context, reqType model.RequestType, orderID, sourceID string) (*model.Request, error)

	// AssignUsersToRequest fans a new-request out to producers, creating one
	// UserRequest per assignment, then advances the owning order to pending
	// and queues it on the agent's in-process list.
	AssignUsersToRequest(ctx context.Context, principal auth.Principal, requestID string, input *dto.AssignUsersInput) (*model.Request, error)

	GetRequest(ctx context.Context, requestID string) (*model.Request, error)
	AdvanceRequest(ctx context.Context, principal auth.Principal, requestID string, next model.OrderStatus) (*model.Request, error)
	AdvanceUserRequest(ctx context.Context, principal auth.Principal, userRequestID string, next model.UserRequestStatus) (*model.UserRequest, error)

	// Overview summarizes the assigned cluster's requests for a field agent.
	Overview(ctx context.Context, principal auth.Principal) (*dto.Overview, error)
}
