package order

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// FindByIDAndOfftaker scopes the lookup to the owning buyer.
	FindByIDAndOfftaker(ctx context.Context, id, offtakerID string) (*model.Order, error)
	FindByOfftaker(ctx context.Context, offtakerID string) ([]model.Order, error)
	Create(ctx context.Context, o *model.Order) error
	// SetStatus writes the status and returns the re-read order so callers
	// can verify the write took effect.
	SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
}
