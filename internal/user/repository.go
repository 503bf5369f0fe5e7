// Package user is the role profile store: base identity rows plus a per-role
// profile document, consumed by the cluster, order and request components.
package user

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListByTypes(ctx context.Context, types []model.UserType) ([]model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error

	// Back-reference writers used by the membership manager and the request
	// workflow. Each touches only its profile branch so concurrent writers on
	// different branches cannot clobber each other.
	SetProducerClusterDetail(ctx context.Context, userID string, userType model.UserType, detail *model.ClusterDetail) error
	SetAgentAssignment(ctx context.Context, userID string, assignment *model.AssignedCluster) error
	AppendOrderInProcess(ctx context.Context, userID, orderID string) error
}
