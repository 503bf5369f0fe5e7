package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/notification"
	"github.com/byron-a/ExciteTrade-backend/internal/order"
	"github.com/byron-a/ExciteTrade-backend/internal/request"
	"github.com/byron-a/ExciteTrade-backend/internal/request/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/user"
)

type requestUseCase struct {
	repo     request.Repository
	orders   order.Repository
	users    user.Repository
	clusters cluster.Repository
	notifier notification.Dispatcher
	logger   *zap.Logger
}

func NewRequestUseCase(
	repo request.Repository,
	orders order.Repository,
	users user.Repository,
	clusters cluster.Repository,
	notifier notification.Dispatcher,
	log *zap.Logger,
) request.UseCase {
	return &requestUseCase{
		repo:     repo,
		orders:   orders,
		users:    users,
		clusters: clusters,
		notifier: notifier,
		logger:   log,
	}
}

func (uc *requestUseCase) CreateRequest(ctx context.Context, reqType model.RequestType, orderID, sourceID string) (*model.Request, error) {
	r := model.NewRequest(uuid.New().String(), reqType, orderID, sourceID, time.Now())
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *requestUseCase) GetRequest(ctx context.Context, requestID string) (*model.Request, error) {
	r, err := uc.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperror.NotFound("request does not exist")
	}
	return r, nil
}

// AssignUsersToRequest fans a fresh cluster request out to producers. Every
// assignment gets its own UserRequest row; the request, the owning order and
// the agent's in-process queue are then advanced together. Writes after the
// first are not transactional: a later failure leaves earlier UserRequests in
// place and is reported as a partial failure.
func (uc *requestUseCase) AssignUsersToRequest(ctx context.Context, principal auth.Principal, requestID string, input *dto.AssignUsersInput) (*model.Request, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemExcite); err != nil {
		return nil, err
	}
	if len(input.Users) == 0 {
		return nil, apperror.InvalidInput("no users to assign")
	}

	r, err := uc.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperror.NotFound("request does not exist")
	}
	if r.Status != model.OrderStatusNewRequest {
		return nil, apperror.Newf(apperror.KindInvalidState,
			"request is already %s, users can only be assigned to a new request", r.Status)
	}

	// Validate every producer before the first write.
	assignees := make([]*model.User, 0, len(input.Users))
	for _, a := range input.Users {
		u, err := uc.users.FindByID(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, apperror.Newf(apperror.KindNotFound, "user %s does not exist", a.UserID)
		}
		if !u.UserType.IsProducer() {
			return nil, apperror.Newf(apperror.KindInvalidInput,
				"user %s is a %s, only producers can be assigned", a.UserID, u.UserType)
		}
		assignees = append(assignees, u)
	}

	now := time.Now()
	for i, a := range input.Users {
		units := a.QuantityUnits
		if units == "" {
			units = model.DefaultQuantityUnits
		}
		ur := &model.UserRequest{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Cluster:       r.SourceID,
			Request:       r.ID,
			User:          a.UserID,
			Status:        model.UserRequestStatusPending,
			Quantity:      a.Quantity,
			QuantityUnits: units,
		}
		if err := uc.repo.CreateUserRequest(ctx, ur); err != nil {
			return nil, uc.partial(r.ID, err)
		}
		r.UsersOnRequest = append(r.UsersOnRequest, ur.ID)

		if err := uc.notifier.Send(ctx, a.UserID, "New Production Request",
			fmt.Sprintf("You have been assigned %.2f %s of produce. Check your requests for details.", a.Quantity, units),
		); err != nil {
			uc.logger.Warn("assignment notification failed",
				zap.String("user_id", assignees[i].ID), zap.Error(err))
		}
	}

	r.Status = model.OrderStatusPending
	r.UpdatedAt = now
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, uc.partial(r.ID, err)
	}

	o, err := uc.orders.FindByID(ctx, r.Order)
	if err != nil {
		return nil, uc.partial(r.ID, err)
	}
	if o == nil {
		return nil, uc.partial(r.ID,
			apperror.Newf(apperror.KindInconsistent, "request %s points at a missing order %s", r.ID, r.Order))
	}
	updated, err := uc.orders.SetStatus(ctx, o.ID, model.OrderStatusPending)
	if err != nil {
		return nil, uc.partial(r.ID, err)
	}
	if updated == nil || updated.Status == model.OrderStatusNewRequest {
		uc.logger.Error("order status did not advance with its request",
			zap.String("request_id", r.ID), zap.String("order_id", o.ID))
		return nil, apperror.Newf(apperror.KindInconsistent, "order %s did not leave the new-request stage", o.ID)
	}

	if err := uc.users.AppendOrderInProcess(ctx, principal.ID, o.ID); err != nil {
		return nil, uc.partial(r.ID, err)
	}

	return r, nil
}

// partial wraps a mid-fan-out failure so callers can tell it apart from a
// clean rejection.
func (uc *requestUseCase) partial(requestID string, err error) error {
	if apperror.IsKind(err, apperror.KindPartialFailure) {
		return err
	}
	uc.logger.Error("request assignment left partial state",
		zap.String("request_id", requestID), zap.Error(err))
	return apperror.Wrap(apperror.KindPartialFailure,
		fmt.Sprintf("request %s was partially assigned", requestID), err)
}

func (uc *requestUseCase) AdvanceRequest(ctx context.Context, principal auth.Principal, requestID string, next model.OrderStatus) (*model.Request, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemExcite, model.UserTypeStoreKeeper, model.UserTypeAdmin); err != nil {
		return nil, err
	}

	r, err := uc.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperror.NotFound("request does not exist")
	}
	if !r.Status.CanTransition(next) {
		return nil, apperror.Newf(apperror.KindInvalidState,
			"request cannot move from %s to %s", r.Status, next)
	}

	r.Status = next
	r.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	// The owning order tracks the request through the shared pipeline.
	if _, err := uc.orders.SetStatus(ctx, r.Order, next); err != nil {
		uc.logger.Error("order did not follow its request",
			zap.String("request_id", r.ID),
			zap.String("order_id", r.Order),
			zap.Error(err))
		return nil, apperror.Wrap(apperror.KindPartialFailure,
			fmt.Sprintf("request %s advanced but order %s did not", r.ID, r.Order), err)
	}
	return r, nil
}

func (uc *requestUseCase) AdvanceUserRequest(ctx context.Context, principal auth.Principal, userRequestID string, next model.UserRequestStatus) (*model.UserRequest, error) {
	ur, err := uc.repo.FindUserRequestByID(ctx, userRequestID)
	if err != nil {
		return nil, err
	}
	if ur == nil {
		return nil, apperror.NotFound("user request does not exist")
	}

	// Producers may only drive their own assignment; agents and admins may
	// drive any.
	if principal.UserType.IsProducer() && ur.User != principal.ID {
		return nil, apperror.PermissionDenied("unauthorized user")
	}
	if !principal.UserType.IsProducer() {
		if err := auth.RequireRole(principal, model.UserTypeGemExcite, model.UserTypeAdmin); err != nil {
			return nil, err
		}
	}

	if !ur.Status.CanTransition(next) {
		return nil, apperror.Newf(apperror.KindInvalidState,
			"user request cannot move from %s to %s", ur.Status, next)
	}
	ur.Status = next
	ur.UpdatedAt = time.Now()
	if err := uc.repo.UpdateUserRequest(ctx, ur); err != nil {
		return nil, err
	}
	return ur, nil
}

func (uc *requestUseCase) Overview(ctx context.Context, principal auth.Principal) (*dto.Overview, error) {
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

	requests, err := uc.repo.FindBySource(ctx, c.ID, model.RequestSourceCluster)
	if err != nil {
		return nil, err
	}

	ov := &dto.Overview{Requests: requests}
	for _, r := range requests {
		switch r.Status {
		case model.OrderStatusNewRequest:
			ov.NewRequest++
		case model.OrderStatusInCultivation:
			ov.InCultivationRequest++
		case model.OrderStatusHarvested:
			ov.HarvestedRequest++
		}
	}
	return ov, nil
}
