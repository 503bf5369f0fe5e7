package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cache"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/notification"
	"github.com/byron-a/ExciteTrade-backend/internal/order"
	"github.com/byron-a/ExciteTrade-backend/internal/order/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/request"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse"
)

type orderUseCase struct {
	repo       order.Repository
	clusters   cluster.Repository
	warehouses warehouse.Repository
	requests   request.UseCase
	notifier   notification.Dispatcher
	locker     cache.Locker
	logger     *zap.Logger
}

func NewOrderUseCase(
	repo order.Repository,
	clusters cluster.Repository,
	warehouses warehouse.Repository,
	requests request.UseCase,
	notifier notification.Dispatcher,
	locker cache.Locker,
	log *zap.Logger,
) order.UseCase {
	return &orderUseCase{
		repo:       repo,
		clusters:   clusters,
		warehouses: warehouses,
		requests:   requests,
		notifier:   notifier,
		locker:     locker,
		logger:     log,
	}
}

func newTrackingID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}

// Checkout validates the destination warehouse, then allocates one order plus
// one workflow request per item. Items are processed independently with no
// surrounding transaction: a failing item aborts the checkout, but orders
// already created for earlier items stay committed.
func (uc *orderUseCase) Checkout(ctx context.Context, principal auth.Principal, input *dto.CheckoutInput) ([]model.Order, error) {
	if err := auth.RequireRole(principal, model.UserTypeOfftaker); err != nil {
		return nil, err
	}

	selected, err := uc.warehouses.FindByIDAndType(ctx,
		input.SelectedWarehouse.WarehouseID,
		model.WarehouseType(input.SelectedWarehouse.WarehouseType))
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, apperror.InvalidInput("invalid warehouse picked")
	}

	switch model.OrderType(input.OrderType) {
	case model.OrderTypePreOrder:
		return uc.checkoutPreOrder(ctx, principal, selected, input)
	case model.OrderTypeOrder:
		return uc.checkoutFromStorage(ctx, principal, selected, input)
	default:
		return nil, apperror.Newf(apperror.KindInvalidInput, "invalid order type %q", input.OrderType)
	}
}

func (uc *orderUseCase) checkoutPreOrder(ctx context.Context, principal auth.Principal, selected *model.Warehouse, input *dto.CheckoutInput) ([]model.Order, error) {
	if len(input.Clusters) == 0 {
		return nil, apperror.InvalidInput("a pre-order needs at least one cluster")
	}

	var orders []model.Order
	for _, item := range input.Clusters {
		c, err := uc.clusters.FindByID(ctx, item.ClusterID)
		if err != nil {
			return orders, err
		}
		if c == nil {
			return orders, apperror.NotFound("a cluster picked is invalid")
		}

		now := time.Now()
		o := model.NewOrder(uuid.New().String(), principal.ID, selected.ID, newTrackingID(),
			model.OrderTypePreOrder, item.Quantity, now)
		o.Cluster = &c.ID
		o.EstimatedDeliveryDate = input.EstimatedDeliveryDate
		if err := uc.repo.Create(ctx, o); err != nil {
			return orders, err
		}

		if _, err := uc.requests.CreateRequest(ctx, model.RequestTypeGemExcite, o.ID, c.ID); err != nil {
			return orders, err
		}

		// Charge the cluster's capacity ledger under its lock.
		err = cache.WithLock(ctx, uc.locker, "lock:cluster:"+c.ID, func() error {
			c, err := uc.clusters.FindByID(ctx, item.ClusterID)
			if err != nil {
				return err
			}
			if c == nil {
				return apperror.NotFound("a cluster picked is invalid")
			}
			c.OrderRequested = append(c.OrderRequested, model.OrderRequestRef{
				Quantity: item.Quantity,
				Order:    o.ID,
			})
			c.UpdatedAt = time.Now()
			_, available := cluster.RecomputeCapacity(c)
			if available < 0 {
				// Overbooking is allowed; surfacing it is a product decision
				// still pending, so it is only logged.
				uc.logger.Warn("cluster over-allocated by pre-order",
					zap.String("cluster_id", c.ID),
					zap.String("order_id", o.ID),
					zap.Float64("cluster_available", available))
			}
			return uc.clusters.Update(ctx, c)
		})
		if err != nil {
			return orders, err
		}

		if err := uc.notifier.Send(ctx, principal.ID, "Order Placed",
			fmt.Sprintf("Your order has been sent to the cluster with all the details involved.\nTrack your order with this ID:%s", o.TrackingID),
		); err != nil {
			uc.logger.Warn("checkout notification failed",
				zap.String("order_id", o.ID), zap.Error(err))
		}

		orders = append(orders, *o)
	}
	return orders, nil
}

func (uc *orderUseCase) checkoutFromStorage(ctx context.Context, principal auth.Principal, selected *model.Warehouse, input *dto.CheckoutInput) ([]model.Order, error) {
	if len(input.Storages) == 0 {
		return nil, apperror.InvalidInput("an order needs at least one storage warehouse")
	}

	var orders []model.Order
	for _, item := range input.Storages {
		storage, err := uc.warehouses.FindByID(ctx, item.WarehouseID)
		if err != nil {
			return orders, err
		}
		if storage == nil {
			return orders, apperror.NotFound("a storage warehouse picked is invalid")
		}

		now := time.Now()
		o := model.NewOrder(uuid.New().String(), principal.ID, selected.ID, newTrackingID(),
			model.OrderTypeOrder, item.Quantity, now)
		o.Storage = &storage.ID
		o.EstimatedDeliveryDate = input.EstimatedDeliveryDate
		o.PricePerTonne = item.PricePerTonne
		o.TotalAmount = item.PricePerTonne * item.Quantity
		if err := uc.repo.Create(ctx, o); err != nil {
			return orders, err
		}

		if _, err := uc.requests.CreateRequest(ctx, model.RequestTypeStoreKeeper, o.ID, storage.ID); err != nil {
			return orders, err
		}

		if err := uc.notifier.Send(ctx, principal.ID, "Order Placed",
			fmt.Sprintf("Your order has been placed against warehouse stock.\nTrack your order with this ID:%s", o.TrackingID),
		); err != nil {
			uc.logger.Warn("checkout notification failed",
				zap.String("order_id", o.ID), zap.Error(err))
		}

		orders = append(orders, *o)
	}
	return orders, nil
}

func (uc *orderUseCase) GetOrders(ctx context.Context, principal auth.Principal) ([]model.Order, error) {
	if err := auth.RequireRole(principal, model.UserTypeOfftaker); err != nil {
		return nil, err
	}
	return uc.repo.FindByOfftaker(ctx, principal.ID)
}

func (uc *orderUseCase) GetOrder(ctx context.Context, principal auth.Principal, orderID string) (*model.Order, error) {
	if err := auth.RequireRole(principal, model.UserTypeOfftaker); err != nil {
		return nil, err
	}

	// Ownership is part of the lookup: another buyer's order is
	// indistinguishable from a missing one.
	o, err := uc.repo.FindByIDAndOfftaker(ctx, orderID, principal.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("order does not exist")
	}
	return o, nil
}

func (uc *orderUseCase) AdvanceOrder(ctx context.Context, orderID string, next model.OrderStatus) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("order does not exist")
	}
	if !o.Status.CanTransition(next) {
		return nil, apperror.Newf(apperror.KindInvalidState,
			"order cannot move from %s to %s", o.Status, next)
	}

	updated, err := uc.repo.SetStatus(ctx, orderID, next)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("order does not exist")
	}
	return updated, nil
}
