package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

// fakeClusterRepo keeps clusters in a map and enforces the real store's
// unique constraints on cluster_code and name+location.
type fakeClusterRepo struct {
	clusters   map[string]*model.Cluster
	createErrs int // fail this many Creates with Conflict before succeeding
	updateErr  error
}

func newFakeClusterRepo() *fakeClusterRepo {
	return &fakeClusterRepo{clusters: make(map[string]*model.Cluster)}
}

func (r *fakeClusterRepo) FindByID(_ context.Context, id string) (*model.Cluster, error) {
	c, ok := r.clusters[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClusterRepo) FindByCode(_ context.Context, code string) (*model.Cluster, error) {
	for _, c := range r.clusters {
		if c.ClusterCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClusterRepo) FindAll(_ context.Context, _ *dto.ClusterFilters) ([]model.Cluster, int, error) {
	var out []model.Cluster
	for _, c := range r.clusters {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *fakeClusterRepo) ExistsByNameAndLocation(_ context.Context, name, location string) (bool, error) {
	for _, c := range r.clusters {
		if c.Name == name && c.Location == location {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClusterRepo) CountByWarehouse(_ context.Context, warehouseID string) (int, error) {
	n := 0
	for _, c := range r.clusters {
		if c.WarehouseID != nil && *c.WarehouseID == warehouseID {
			n++
		}
	}
	return n, nil
}

func (r *fakeClusterRepo) FindByWarehouse(_ context.Context, warehouseID string) ([]model.Cluster, error) {
	var out []model.Cluster
	for _, c := range r.clusters {
		if c.WarehouseID != nil && *c.WarehouseID == warehouseID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClusterRepo) Create(_ context.Context, c *model.Cluster) error {
	if r.createErrs > 0 {
		r.createErrs--
		return apperror.Conflict("duplicate key value violates unique constraint")
	}
	for _, existing := range r.clusters {
		if existing.ClusterCode == c.ClusterCode {
			return apperror.Conflict("duplicate key value violates unique constraint")
		}
	}
	cp := *c
	r.clusters[c.ID] = &cp
	return nil
}

func (r *fakeClusterRepo) Update(_ context.Context, c *model.Cluster) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *c
	r.clusters[c.ID] = &cp
	return nil
}

func (r *fakeClusterRepo) Delete(_ context.Context, id string) error {
	delete(r.clusters, id)
	return nil
}

type fakeUserRepo struct {
	users            map[string]*model.User
	clusterDetailErr error
	agentAssignErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByTypes(_ context.Context, types []model.UserType) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		for _, t := range types {
			if u.UserType == t {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SetProducerClusterDetail(_ context.Context, userID string, userType model.UserType, detail *model.ClusterDetail) error {
	if r.clusterDetailErr != nil {
		return r.clusterDetailErr
	}
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	switch userType {
	case model.UserTypeFarmer:
		if u.Profile.Farmer == nil {
			u.Profile.Farmer = &model.FarmerProfile{}
		}
		u.Profile.Farmer.ClusterDetail = detail
	case model.UserTypeMiner:
		if u.Profile.Miner == nil {
			u.Profile.Miner = &model.MinerProfile{}
		}
		u.Profile.Miner.ClusterDetail = detail
	}
	return nil
}

func (r *fakeUserRepo) SetAgentAssignment(_ context.Context, userID string, assignment *model.AssignedCluster) error {
	if r.agentAssignErr != nil {
		return r.agentAssignErr
	}
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	if u.Profile.GemExcite == nil {
		u.Profile.GemExcite = &model.GemExciteProfile{}
	}
	u.Profile.GemExcite.IsAssignedCluster = assignment
	return nil
}

func (r *fakeUserRepo) AppendOrderInProcess(_ context.Context, userID, orderID string) error {
	u, ok := r.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	if u.Profile.GemExcite == nil {
		u.Profile.GemExcite = &model.GemExciteProfile{}
	}
	u.Profile.GemExcite.OrdersInProcess = append(u.Profile.GemExcite.OrdersInProcess,
		model.OrderInProcess{Order: orderID})
	return nil
}

// fakeLocker always grants the lock.
type fakeLocker struct{}

func (fakeLocker) AcquireLock(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}
func (fakeLocker) ReleaseLock(context.Context, string, string) error { return nil }

var (
	gemAdmin = auth.Principal{ID: "admin-1", UserType: model.UserTypeGemAdmin}
	offtaker = auth.Principal{ID: "buyer-1", UserType: model.UserTypeOfftaker}
)

func newTestUseCase(t *testing.T) (*fakeClusterRepo, *fakeUserRepo, *clusterUseCase) {
	t.Helper()
	repo := newFakeClusterRepo()
	users := newFakeUserRepo()
	uc := NewClusterUseCase(repo, users, fakeLocker{}, zap.NewNop()).(*clusterUseCase)
	return repo, users, uc
}

func seedFarmer(users *fakeUserRepo, id string, capacity float64) {
	users.users[id] = &model.User{
		BaseModel: model.BaseModel{ID: id},
		FirstName: "Test",
		LastName:  id,
		UserType:  model.UserTypeFarmer,
		Profile: model.Profile{Farmer: &model.FarmerProfile{
			CommodityProductionCapacity: capacity,
		}},
	}
}

func seedAgent(users *fakeUserRepo, id string) {
	users.users[id] = &model.User{
		BaseModel: model.BaseModel{ID: id},
		FirstName: "Agent",
		LastName:  id,
		UserType:  model.UserTypeGemExcite,
		Profile:   model.Profile{GemExcite: &model.GemExciteProfile{}},
	}
}

func TestCreateCluster(t *testing.T) {
	_, _, uc := newTestUseCase(t)

	created, err := uc.CreateCluster(context.Background(), gemAdmin, &dto.CreateClusterInput{
		Name:          "Kano Maize Belt",
		Type:          "farmer",
		CommodityName: "Maize",
		Location:      "Kano",
	})
	require.NoError(t, err)

	assert.Equal(t, model.ClusterTypeFarmer, created.Type)
	assert.Len(t, created.ClusterCode, 8)
	assert.Equal(t, "This product is Screened and Assured by Excite Trade", created.Description)
	assert.False(t, created.GemExciteAssigned.Assigned)
	assert.Equal(t, "Not-assigned", created.GemExciteAssigned.Name)
	assert.Zero(t, created.ClusterCapacity)
	assert.Zero(t, created.ClusterAvailable)
	assert.NotEmpty(t, created.Slug)
}

func TestCreateClusterDeniedForNonAdmin(t *testing.T) {
	_, _, uc := newTestUseCase(t)

	_, err := uc.CreateCluster(context.Background(), offtaker, &dto.CreateClusterInput{
		Name: "X", Type: "farmer", Location: "Kano",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
}

func TestCreateClusterInvalidType(t *testing.T) {
	_, _, uc := newTestUseCase(t)

	_, err := uc.CreateCluster(context.Background(), gemAdmin, &dto.CreateClusterInput{
		Name: "X", Type: "fisher", Location: "Kano",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestCreateClusterDuplicateNameAndLocation(t *testing.T) {
	_, _, uc := newTestUseCase(t)

	input := &dto.CreateClusterInput{Name: "Kano Maize Belt", Type: "farmer", Location: "Kano"}
	_, err := uc.CreateCluster(context.Background(), gemAdmin, input)
	require.NoError(t, err)

	_, err = uc.CreateCluster(context.Background(), gemAdmin, input)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestCreateClusterRetriesOnCodeCollision(t *testing.T) {
	repo, _, uc := newTestUseCase(t)
	repo.createErrs = 2

	created, err := uc.CreateCluster(context.Background(), gemAdmin, &dto.CreateClusterInput{
		Name: "Jos Tin Fields", Type: "miner", Location: "Jos",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ClusterCode)
}

func TestCreateClusterGivesUpAfterRetries(t *testing.T) {
	repo, _, uc := newTestUseCase(t)
	repo.createErrs = codeAttempts

	_, err := uc.CreateCluster(context.Background(), gemAdmin, &dto.CreateClusterInput{
		Name: "Jos Tin Fields", Type: "miner", Location: "Jos",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func seedCluster(repo *fakeClusterRepo, id string, clusterType model.ClusterType) *model.Cluster {
	c := &model.Cluster{
		BaseModel:         model.BaseModel{ID: id},
		Name:              "Cluster " + id,
		Type:              clusterType,
		ClusterCode:       "CODE" + id,
		GemExciteAssigned: model.UnassignedAgent(),
		Producers:         model.ProducerList{},
		OrderRequested:    model.OrderRequestList{},
	}
	repo.clusters[id] = c
	return c
}

func TestAttachProducer(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 150)

	updated, err := uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	require.NoError(t, err)

	require.Len(t, updated.Producers, 1)
	assert.Equal(t, 150.0, updated.Producers[0].ProductionCapacity)
	assert.Equal(t, 150.0, updated.ClusterCapacity)
	assert.Equal(t, 150.0, updated.ClusterAvailable)

	// Producer-side back-reference written.
	u, _ := users.FindByID(context.Background(), "f1")
	require.NotNil(t, u.ClusterDetail())
	assert.Equal(t, "c1", u.ClusterDetail().ClusterID)
}

func TestAttachProducerTypeMismatch(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeMiner)
	seedFarmer(users, "f1", 150)

	_, err := uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	assert.True(t, apperror.IsKind(err, apperror.KindTypeMismatch))
	assert.Contains(t, err.Error(), "you can't add a FARMER in a MINER cluster")
}

func TestAttachProducerDuplicate(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 150)

	_, err := uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	require.NoError(t, err)

	_, err = uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestAttachProducerCompensatesOnBackRefFailure(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 150)
	users.clusterDetailErr = errors.New("profile store down")

	_, err := uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	assert.True(t, apperror.IsKind(err, apperror.KindPartialFailure))

	// Cluster-side write was rolled back.
	c, _ := repo.FindByID(context.Background(), "c1")
	assert.Empty(t, c.Producers)
	assert.Zero(t, c.ClusterCapacity)
}

func TestDetachProducer(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	c := seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 150)

	_, err := uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	require.NoError(t, err)

	updated, err := uc.DetachProducer(context.Background(), gemAdmin, c.ClusterCode, model.UserTypeFarmer, "f1")
	require.NoError(t, err)
	assert.Empty(t, updated.Producers)
	assert.Zero(t, updated.ClusterCapacity)

	u, _ := users.FindByID(context.Background(), "f1")
	assert.Nil(t, u.ClusterDetail())
}

func TestDetachProducerNotInCluster(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	c := seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 150)

	_, err := uc.DetachProducer(context.Background(), gemAdmin, c.ClusterCode, model.UserTypeFarmer, "f1")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAssignAgent(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	c := seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedAgent(users, "a1")

	updated, err := uc.AssignAgent(context.Background(), gemAdmin, "c1", "a1")
	require.NoError(t, err)
	assert.True(t, updated.GemExciteAssigned.Assigned)
	assert.Equal(t, "a1", updated.GemExciteAssigned.ID)

	u, _ := users.FindByID(context.Background(), "a1")
	require.NotNil(t, u.AssignedCluster())
	assert.Equal(t, c.ClusterCode, u.AssignedCluster().ClusterCode)
}

func TestAssignAgentAlreadyAssignedElsewhere(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedCluster(repo, "c2", model.ClusterTypeFarmer)
	seedAgent(users, "a1")

	_, err := uc.AssignAgent(context.Background(), gemAdmin, "c1", "a1")
	require.NoError(t, err)

	_, err = uc.AssignAgent(context.Background(), gemAdmin, "c2", "a1")
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestAssignAgentNotAnAgent(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 10)

	_, err := uc.AssignAgent(context.Background(), gemAdmin, "c1", "f1")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestAssignAgentCompensatesOnBackRefFailure(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedAgent(users, "a1")
	users.agentAssignErr = errors.New("profile store down")

	_, err := uc.AssignAgent(context.Background(), gemAdmin, "c1", "a1")
	assert.True(t, apperror.IsKind(err, apperror.KindPartialFailure))

	c, _ := repo.FindByID(context.Background(), "c1")
	assert.False(t, c.GemExciteAssigned.Assigned)
}

func TestDetachAgent(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	c := seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedAgent(users, "a1")

	_, err := uc.AssignAgent(context.Background(), gemAdmin, "c1", "a1")
	require.NoError(t, err)

	updated, err := uc.DetachAgent(context.Background(), gemAdmin, c.ClusterCode, "a1")
	require.NoError(t, err)
	assert.False(t, updated.GemExciteAssigned.Assigned)
	assert.Equal(t, "Not-assigned", updated.GemExciteAssigned.Name)

	u, _ := users.FindByID(context.Background(), "a1")
	assert.Nil(t, u.AssignedCluster())
}

func TestDetachAgentWrongAgent(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	c := seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedAgent(users, "a1")
	seedAgent(users, "a2")

	_, err := uc.AssignAgent(context.Background(), gemAdmin, "c1", "a1")
	require.NoError(t, err)

	_, err = uc.DetachAgent(context.Background(), gemAdmin, c.ClusterCode, "a2")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteClusterBlockedByMembership(t *testing.T) {
	repo, users, uc := newTestUseCase(t)
	seedCluster(repo, "c1", model.ClusterTypeFarmer)
	seedFarmer(users, "f1", 150)

	_, err := uc.AttachProducer(context.Background(), gemAdmin, "c1", "f1")
	require.NoError(t, err)

	err = uc.DeleteCluster(context.Background(), gemAdmin, "c1")
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = uc.DetachProducer(context.Background(), gemAdmin, "CODEc1", model.UserTypeFarmer, "f1")
	require.NoError(t, err)

	err = uc.DeleteCluster(context.Background(), gemAdmin, "c1")
	require.NoError(t, err)

	c, _ := repo.FindByID(context.Background(), "c1")
	assert.Nil(t, c)
}
