package cluster

import (
	"context"

	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

// UseCase is the cluster lifecycle plus the membership manager: producer and
// field-agent attach/detach with bidirectional back-references kept in sync.
type UseCase interface {
	CreateCluster(ctx context.Context, principal auth.Principal, input *dto.CreateClusterInput) (*model.Cluster, error)
	UpdateCluster(ctx context.Context, principal auth.Principal, clusterID string, input *dto.UpdateClusterInput) (*model.Cluster, error)
	DeleteCluster(ctx context.Context, principal auth.Principal, clusterID string) error
	GetCluster(ctx context.Context, clusterID string) (*model.Cluster, error)
	ListClusters(ctx context.Context, filters *dto.ClusterFilters) ([]model.Cluster, int, error)

	AssignAgent(ctx context.Context, principal auth.Principal, clusterID, agentID string) (*model.Cluster, error)
	DetachAgent(ctx context.Context, principal auth.Principal, clusterCode, agentID string) (*model.Cluster, error)
	AttachProducer(ctx context.Context, principal auth.Principal, clusterID, producerID string) (*model.Cluster, error)
	DetachProducer(ctx context.Context, principal auth.Principal, clusterCode string, producerType model.UserType, producerID string) (*model.Cluster, error)
}
