package order

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/order/dto"
)

// UseCase is the order allocation service: it turns checkout intents into
// orders plus their workflow requests and charges cluster capacity.
type UseCase interface {
	Checkout(ctx context.Context, principal auth.Principal, input *dto.CheckoutInput) ([]model.Order, error)
	GetOrders(ctx context.Context, principal auth.Principal) ([]model.Order, error)
	GetOrder(ctx context.Context, principal auth.Principal, orderID string) (*model.Order, error)
	AdvanceOrder(ctx context.Context, orderID string, next model.OrderStatus) (*model.Order, error)
}
