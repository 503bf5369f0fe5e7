package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cache"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/user"
)

// codeAttempts bounds the retry loop on cluster-code collisions; uniqueness
// itself is enforced by the store's constraint.
const codeAttempts = 5

type clusterUseCase struct {
	repo   cluster.Repository
	users  user.Repository
	locker cache.Locker
	logger *zap.Logger
}

func NewClusterUseCase(repo cluster.Repository, users user.Repository, locker cache.Locker, log *zap.Logger) cluster.UseCase {
	return &clusterUseCase{
		repo:   repo,
		users:  users,
		locker: locker,
		logger: log,
	}
}

func clusterLockKey(clusterID string) string {
	return "lock:cluster:" + clusterID
}

func randomCode(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(slugStrip.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (uc *clusterUseCase) CreateCluster(ctx context.Context, principal auth.Principal, input *dto.CreateClusterInput) (*model.Cluster, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	clusterType := model.ClusterType(input.Type)
	if clusterType != model.ClusterTypeFarmer && clusterType != model.ClusterTypeMiner {
		return nil, apperror.Newf(apperror.KindInvalidInput, "invalid cluster type %q", input.Type)
	}

	exists, err := uc.repo.ExistsByNameAndLocation(ctx, input.Name, input.Location)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("a cluster with this name already exists at this location")
	}

	description := input.Description
	if description == "" {
		description = "This product is Screened and Assured by Excite Trade"
	}
	var warehouseID *string
	if input.WarehouseID != "" {
		warehouseID = &input.WarehouseID
	}

	// A fresh code per attempt; the store's unique constraint decides whether
	// the code is free.
	var lastErr error
	for i := 0; i < codeAttempts; i++ {
		code := randomCode(4)
		now := time.Now()
		c := &model.Cluster{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Name:              input.Name,
			Slug:              slugify(fmt.Sprintf("%s %s %s", input.CommodityName, input.Location, code[:3])),
			Type:              clusterType,
			Description:       description,
			CommodityName:     input.CommodityName,
			Location:          input.Location,
			ClusterCode:       code,
			CreatedBy:         principal.ID,
			WarehouseID:       warehouseID,
			GemExciteAssigned: model.UnassignedAgent(),
			Producers:         model.ProducerList{},
			OrderRequested:    model.OrderRequestList{},
		}
		cluster.RecomputeCapacity(c)

		err := uc.repo.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if !apperror.IsKind(err, apperror.KindConflict) {
			return nil, err
		}
		uc.logger.Warn("cluster code collision, regenerating",
			zap.String("cluster_code", code), zap.Int("attempt", i+1))
		lastErr = err
	}
	return nil, apperror.Wrap(apperror.KindConflict, "could not allocate a unique cluster code", lastErr)
}

func (uc *clusterUseCase) UpdateCluster(ctx context.Context, principal auth.Principal, clusterID string, input *dto.UpdateClusterInput) (*model.Cluster, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	var updated *model.Cluster
	err := cache.WithLock(ctx, uc.locker, clusterLockKey(clusterID), func() error {
		c, err := uc.repo.FindByID(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound("cluster not found")
		}

		if input.Name != "" {
			c.Name = input.Name
		}
		if input.Description != "" {
			c.Description = input.Description
		}
		if input.Location != "" {
			c.Location = input.Location
		}
		if input.CommodityName != "" {
			c.CommodityName = input.CommodityName
		}
		c.UpdatedAt = time.Now()
		cluster.RecomputeCapacity(c)

		if err := uc.repo.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	return updated, err
}

// DeleteCluster is blocked while membership remains, mirroring the warehouse
// rule: detach producers and the agent first.
func (uc *clusterUseCase) DeleteCluster(ctx context.Context, principal auth.Principal, clusterID string) error {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return err
	}

	c, err := uc.repo.FindByID(ctx, clusterID)
	if err != nil {
		return err
	}
	if c == nil {
		return apperror.NotFound("cluster not found")
	}
	if len(c.Producers) > 0 {
		return apperror.Conflict("producers are still attached to this cluster")
	}
	if c.GemExciteAssigned.Assigned {
		return apperror.Conflict("a field agent is still assigned to this cluster")
	}

	return uc.repo.Delete(ctx, clusterID)
}

func (uc *clusterUseCase) GetCluster(ctx context.Context, clusterID string) (*model.Cluster, error) {
	c, err := uc.repo.FindByID(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("cluster does not exist")
	}
	return c, nil
}

func (uc *clusterUseCase) ListClusters(ctx context.Context, filters *dto.ClusterFilters) ([]model.Cluster, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// AssignAgent gives the cluster its single field agent. The conflict check is
// a point lookup on the agent's own record rather than a scan across all
// clusters: the back-reference is authoritative for "already assigned
// somewhere".
func (uc *clusterUseCase) AssignAgent(ctx context.Context, principal auth.Principal, clusterID, agentID string) (*model.Cluster, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	agent, err := uc.users.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, apperror.NotFound("field agent does not exist")
	}
	if agent.UserType != model.UserTypeGemExcite {
		return nil, apperror.InvalidInput("user is not a field agent")
	}
	if assigned := agent.AssignedCluster(); assigned != nil && assigned.Assigned {
		return nil, apperror.Newf(apperror.KindConflict,
			"%s has already been assigned to a cluster", agent.FullName())
	}

	var updated *model.Cluster
	err = cache.WithLock(ctx, uc.locker, clusterLockKey(clusterID), func() error {
		c, err := uc.repo.FindByID(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound("cluster not found")
		}
		if c.GemExciteAssigned.Assigned {
			return apperror.Conflict("this cluster already has a field agent")
		}

		previous := c.GemExciteAssigned
		c.GemExciteAssigned = model.GemExciteAssigned{
			Assigned: true,
			Name:     agent.FullName(),
			ID:       agent.ID,
		}
		c.UpdatedAt = time.Now()
		cluster.RecomputeCapacity(c)
		if err := uc.repo.Update(ctx, c); err != nil {
			return err
		}

		mirror := &model.AssignedCluster{
			Assigned:    true,
			ClusterCode: c.ClusterCode,
			ClusterName: c.Name,
		}
		if err := uc.users.SetAgentAssignment(ctx, agent.ID, mirror); err != nil {
			uc.compensateClusterAgent(ctx, c, previous)
			return apperror.Wrap(apperror.KindPartialFailure,
				"cluster updated but agent back-reference failed", err)
		}

		updated = c
		return nil
	})
	return updated, err
}

func (uc *clusterUseCase) DetachAgent(ctx context.Context, principal auth.Principal, clusterCode, agentID string) (*model.Cluster, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	c, err := uc.repo.FindByCode(ctx, clusterCode)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("cluster not found")
	}

	var updated *model.Cluster
	err = cache.WithLock(ctx, uc.locker, clusterLockKey(c.ID), func() error {
		c, err := uc.repo.FindByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound("cluster not found")
		}
		if !c.GemExciteAssigned.Assigned || c.GemExciteAssigned.ID != agentID {
			return apperror.NotFound("field agent is not assigned to this cluster")
		}

		previous := c.GemExciteAssigned
		c.GemExciteAssigned = model.UnassignedAgent()
		c.UpdatedAt = time.Now()
		cluster.RecomputeCapacity(c)
		if err := uc.repo.Update(ctx, c); err != nil {
			return err
		}

		if err := uc.users.SetAgentAssignment(ctx, agentID, nil); err != nil {
			uc.compensateClusterAgent(ctx, c, previous)
			return apperror.Wrap(apperror.KindPartialFailure,
				"cluster updated but agent back-reference failed", err)
		}

		updated = c
		return nil
	})
	return updated, err
}

func (uc *clusterUseCase) AttachProducer(ctx context.Context, principal auth.Principal, clusterID, producerID string) (*model.Cluster, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}

	producer, err := uc.users.FindByID(ctx, producerID)
	if err != nil {
		return nil, err
	}
	if producer == nil {
		return nil, apperror.NotFound("producer does not exist")
	}
	producerClusterType, ok := model.ClusterTypeForProducer(producer.UserType)
	if !ok {
		return nil, apperror.Newf(apperror.KindInvalidInput, "user type %s is not a producer", producer.UserType)
	}

	var updated *model.Cluster
	err = cache.WithLock(ctx, uc.locker, clusterLockKey(clusterID), func() error {
		c, err := uc.repo.FindByID(ctx, clusterID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound("cluster not found")
		}
		if c.Type != producerClusterType {
			return apperror.Newf(apperror.KindTypeMismatch,
				"you can't add a %s in a %s cluster",
				strings.ToUpper(string(producer.UserType)), strings.ToUpper(string(c.Type)))
		}
		if c.Producers.Contains(producer.ID) {
			return apperror.Conflict("this producer already exists in this cluster")
		}

		c.Producers = append(c.Producers, model.ProducerRef{
			ID:                 producer.ID,
			Name:               producer.FullName(),
			Type:               producer.UserType,
			ProductionCapacity: producer.ProductionCapacity(),
		})
		c.UpdatedAt = time.Now()
		cluster.RecomputeCapacity(c)
		if err := uc.repo.Update(ctx, c); err != nil {
			return err
		}

		detail := &model.ClusterDetail{
			ClusterID:   c.ID,
			ClusterCode: c.ClusterCode,
			ClusterName: c.Name,
		}
		if err := uc.users.SetProducerClusterDetail(ctx, producer.ID, producer.UserType, detail); err != nil {
			uc.compensateProducerRemoval(ctx, c, producer.UserType, producer.ID)
			return apperror.Wrap(apperror.KindPartialFailure,
				"cluster updated but producer back-reference failed", err)
		}

		updated = c
		return nil
	})
	return updated, err
}

func (uc *clusterUseCase) DetachProducer(ctx context.Context, principal auth.Principal, clusterCode string, producerType model.UserType, producerID string) (*model.Cluster, error) {
	if err := auth.RequireRole(principal, model.UserTypeGemAdmin); err != nil {
		return nil, err
	}
	if !producerType.IsProducer() {
		return nil, apperror.Newf(apperror.KindInvalidInput, "user type %s is not a producer", producerType)
	}

	c, err := uc.repo.FindByCode(ctx, clusterCode)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("cluster not found")
	}

	var updated *model.Cluster
	err = cache.WithLock(ctx, uc.locker, clusterLockKey(c.ID), func() error {
		c, err := uc.repo.FindByID(ctx, c.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperror.NotFound("cluster not found")
		}

		idx := c.Producers.IndexOf(producerType, producerID)
		if idx < 0 {
			return apperror.Newf(apperror.KindNotFound, "%s not in this cluster", producerType)
		}
		removed := c.Producers[idx]

		c.Producers = append(c.Producers[:idx], c.Producers[idx+1:]...)
		c.UpdatedAt = time.Now()
		cluster.RecomputeCapacity(c)
		if err := uc.repo.Update(ctx, c); err != nil {
			return err
		}

		if err := uc.users.SetProducerClusterDetail(ctx, producerID, producerType, nil); err != nil {
			uc.compensateProducerReinsert(ctx, c, removed)
			return apperror.Wrap(apperror.KindPartialFailure,
				"cluster updated but producer back-reference failed", err)
		}

		updated = c
		return nil
	})
	return updated, err
}

// Compensating actions: the membership manager issues two writes per
// operation without a surrounding transaction. If the user-side write fails,
// the cluster-side write is undone so the two records do not drift; the
// operation still surfaces PartialFailure for the caller to reconcile.

func (uc *clusterUseCase) compensateClusterAgent(ctx context.Context, c *model.Cluster, previous model.GemExciteAssigned) {
	c.GemExciteAssigned = previous
	cluster.RecomputeCapacity(c)
	if err := uc.repo.Update(ctx, c); err != nil {
		uc.logger.Error("compensation failed: cluster agent assignment left inconsistent",
			zap.String("cluster_id", c.ID), zap.Error(err))
	}
}

func (uc *clusterUseCase) compensateProducerRemoval(ctx context.Context, c *model.Cluster, producerType model.UserType, producerID string) {
	if idx := c.Producers.IndexOf(producerType, producerID); idx >= 0 {
		c.Producers = append(c.Producers[:idx], c.Producers[idx+1:]...)
	}
	cluster.RecomputeCapacity(c)
	if err := uc.repo.Update(ctx, c); err != nil {
		uc.logger.Error("compensation failed: cluster producers list left inconsistent",
			zap.String("cluster_id", c.ID), zap.Error(err))
	}
}

func (uc *clusterUseCase) compensateProducerReinsert(ctx context.Context, c *model.Cluster, removed model.ProducerRef) {
	c.Producers = append(c.Producers, removed)
	cluster.RecomputeCapacity(c)
	if err := uc.repo.Update(ctx, c); err != nil {
		uc.logger.Error("compensation failed: cluster producers list left inconsistent",
			zap.String("cluster_id", c.ID), zap.Error(err))
	}
}
