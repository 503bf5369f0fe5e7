package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	clusterdto "github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/commodity/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	requestdto "github.com/byron-a/ExciteTrade-backend/internal/request/dto"
	whdto "github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

type fakeCommodityRepo struct {
	uploads map[string]*model.UploadedCommodity
}

func (r *fakeCommodityRepo) FindByID(_ context.Context, id string) (*model.UploadedCommodity, error) {
	c, ok := r.uploads[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommodityRepo) FindByUser(_ context.Context, userID string) ([]model.UploadedCommodity, error) {
	var out []model.UploadedCommodity
	for _, c := range r.uploads {
		if c.User == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommodityRepo) FindByCluster(_ context.Context, clusterID string) ([]model.UploadedCommodity, error) {
	var out []model.UploadedCommodity
	for _, c := range r.uploads {
		if c.Cluster == clusterID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommodityRepo) Create(_ context.Context, c *model.UploadedCommodity) error {
	cp := *c
	r.uploads[c.ID] = &cp
	return nil
}

func (r *fakeCommodityRepo) SetStatus(_ context.Context, id string, status model.UploadedCommodityStatus) (*model.UploadedCommodity, error) {
	c, ok := r.uploads[id]
	if !ok {
		return nil, nil
	}
	c.Status = status
	cp := *c
	return &cp, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) ListByTypes(_ context.Context, _ []model.UserType) ([]model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }
func (r *fakeUserRepo) Update(_ context.Context, _ *model.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ string) error      { return nil }

func (r *fakeUserRepo) SetProducerClusterDetail(_ context.Context, _ string, _ model.UserType, _ *model.ClusterDetail) error {
	return nil
}

func (r *fakeUserRepo) SetAgentAssignment(_ context.Context, _ string, _ *model.AssignedCluster) error {
	return nil
}

func (r *fakeUserRepo) AppendOrderInProcess(_ context.Context, _, _ string) error { return nil }

type fakeClusterRepo struct {
	clusters map[string]*model.Cluster
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

func (r *fakeClusterRepo) FindAll(_ context.Context, _ *clusterdto.ClusterFilters) ([]model.Cluster, int, error) {
	return nil, 0, nil
}

func (r *fakeClusterRepo) ExistsByNameAndLocation(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (r *fakeClusterRepo) CountByWarehouse(_ context.Context, _ string) (int, error) { return 0, nil }

func (r *fakeClusterRepo) FindByWarehouse(_ context.Context, _ string) ([]model.Cluster, error) {
	return nil, nil
}

func (r *fakeClusterRepo) Create(_ context.Context, _ *model.Cluster) error { return nil }
func (r *fakeClusterRepo) Update(_ context.Context, _ *model.Cluster) error { return nil }
func (r *fakeClusterRepo) Delete(_ context.Context, _ string) error         { return nil }

type fakeRequestRepo struct {
	userRequests map[string]*model.UserRequest
}

func (r *fakeRequestRepo) FindByID(_ context.Context, _ string) (*model.Request, error) {
	return nil, nil
}

func (r *fakeRequestRepo) FindByOrder(_ context.Context, _ string) (*model.Request, error) {
	return nil, nil
}

func (r *fakeRequestRepo) FindBySource(_ context.Context, _, _ string) ([]model.Request, error) {
	return nil, nil
}

func (r *fakeRequestRepo) Create(_ context.Context, _ *model.Request) error { return nil }
func (r *fakeRequestRepo) Update(_ context.Context, _ *model.Request) error { return nil }

func (r *fakeRequestRepo) CreateUserRequest(_ context.Context, ur *model.UserRequest) error {
	cp := *ur
	r.userRequests[ur.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindUserRequestByID(_ context.Context, id string) (*model.UserRequest, error) {
	ur, ok := r.userRequests[id]
	if !ok {
		return nil, nil
	}
	cp := *ur
	return &cp, nil
}

func (r *fakeRequestRepo) FindUserRequestByRequestAndUser(_ context.Context, requestID, userID string) (*model.UserRequest, error) {
	for _, ur := range r.userRequests {
		if ur.Request == requestID && ur.User == userID {
			cp := *ur
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRequestRepo) FindUserRequests(_ context.Context, _ *requestdto.UserRequestFilters) ([]model.UserRequest, error) {
	return nil, nil
}

func (r *fakeRequestRepo) UpdateUserRequest(_ context.Context, ur *model.UserRequest) error {
	cp := *ur
	r.userRequests[ur.ID] = &cp
	return nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*model.Warehouse
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id string) (*model.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) FindByIDAndType(_ context.Context, id string, warehouseType model.WarehouseType) (*model.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok || w.Type != warehouseType {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context, _ *whdto.WarehouseFilters) ([]model.Warehouse, int, error) {
	return nil, 0, nil
}

func (r *fakeWarehouseRepo) Create(_ context.Context, _ *model.Warehouse) error { return nil }
func (r *fakeWarehouseRepo) Update(_ context.Context, _ *model.Warehouse) error { return nil }
func (r *fakeWarehouseRepo) Delete(_ context.Context, _ string) error           { return nil }

func (r *fakeWarehouseRepo) AppendCommodityBatch(_ context.Context, _ string, _ model.CommodityBatch) error {
	return nil
}

var producer = auth.Principal{ID: "f1", UserType: model.UserTypeFarmer}

type testEnv struct {
	repo       *fakeCommodityRepo
	users      *fakeUserRepo
	clusters   *fakeClusterRepo
	requests   *fakeRequestRepo
	warehouses *fakeWarehouseRepo
	uc         *commodityUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:       &fakeCommodityRepo{uploads: make(map[string]*model.UploadedCommodity)},
		users:      &fakeUserRepo{users: make(map[string]*model.User)},
		clusters:   &fakeClusterRepo{clusters: make(map[string]*model.Cluster)},
		requests:   &fakeRequestRepo{userRequests: make(map[string]*model.UserRequest)},
		warehouses: &fakeWarehouseRepo{warehouses: make(map[string]*model.Warehouse)},
	}
	env.uc = NewCommodityUseCase(env.repo, env.users, env.clusters, env.requests, env.warehouses, zap.NewNop()).(*commodityUseCase)

	env.clusters.clusters["c1"] = &model.Cluster{
		BaseModel:   model.BaseModel{ID: "c1"},
		Name:        "Kano Maize Belt",
		ClusterCode: "AB12",
	}
	env.users.users["f1"] = &model.User{
		BaseModel: model.BaseModel{ID: "f1"},
		UserType:  model.UserTypeFarmer,
		Profile: model.Profile{Farmer: &model.FarmerProfile{
			ClusterDetail: &model.ClusterDetail{ClusterID: "c1", ClusterCode: "AB12"},
		}},
	}
	env.requests.userRequests["ur1"] = &model.UserRequest{
		BaseModel: model.BaseModel{ID: "ur1"},
		Cluster:   "c1",
		Request:   "r1",
		User:      "f1",
		Status:    model.UserRequestStatusInCultivation,
	}
	env.warehouses.warehouses["w1"] = &model.Warehouse{
		BaseModel: model.BaseModel{ID: "w1"},
		Type:      model.WarehouseTypeHolding,
	}
	return env
}

func TestUploadCommodity(t *testing.T) {
	env := newTestEnv(t)

	upload, err := env.uc.UploadCommodity(context.Background(), producer, &dto.UploadCommodityInput{
		RequestID:   "r1",
		WarehouseID: "w1",
		Commodity:   "Maize",
		Quantity:    60,
	})
	require.NoError(t, err)

	assert.Equal(t, model.UploadedCommodityStatusPending, upload.Status)
	assert.Equal(t, "c1", upload.Cluster)
	assert.Equal(t, "w1", upload.Warehouse)
	assert.Equal(t, model.DefaultQuantityUnits, upload.QuantityUnits)

	// The producer's assignment moves to uploaded.
	ur, _ := env.requests.FindUserRequestByID(context.Background(), "ur1")
	assert.Equal(t, model.UserRequestStatusUploaded, ur.Status)
}

func TestUploadCommodityRequiresHoldingWarehouse(t *testing.T) {
	env := newTestEnv(t)
	env.warehouses.warehouses["w1"].Type = model.WarehouseTypeBonded

	_, err := env.uc.UploadCommodity(context.Background(), producer, &dto.UploadCommodityInput{
		RequestID: "r1", WarehouseID: "w1", Commodity: "Maize", Quantity: 60,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestUploadCommodityWithoutCluster(t *testing.T) {
	env := newTestEnv(t)
	env.users.users["f1"].Profile.Farmer.ClusterDetail = nil

	_, err := env.uc.UploadCommodity(context.Background(), producer, &dto.UploadCommodityInput{
		RequestID: "r1", WarehouseID: "w1", Commodity: "Maize", Quantity: 60,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUploadCommodityWithoutAssignment(t *testing.T) {
	env := newTestEnv(t)
	delete(env.requests.userRequests, "ur1")

	_, err := env.uc.UploadCommodity(context.Background(), producer, &dto.UploadCommodityInput{
		RequestID: "r1", WarehouseID: "w1", Commodity: "Maize", Quantity: 60,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUploadCommodityDeniedForNonProducers(t *testing.T) {
	env := newTestEnv(t)
	buyer := auth.Principal{ID: "b1", UserType: model.UserTypeOfftaker}

	_, err := env.uc.UploadCommodity(context.Background(), buyer, &dto.UploadCommodityInput{
		RequestID: "r1", WarehouseID: "w1",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindPermissionDenied))
}

func TestListUploadedForCluster(t *testing.T) {
	env := newTestEnv(t)
	env.users.users["a1"] = &model.User{
		BaseModel: model.BaseModel{ID: "a1"},
		UserType:  model.UserTypeGemExcite,
		Profile: model.Profile{GemExcite: &model.GemExciteProfile{
			IsAssignedCluster: &model.AssignedCluster{Assigned: true, ClusterCode: "AB12"},
		}},
	}
	env.repo.uploads["u1"] = &model.UploadedCommodity{
		BaseModel: model.BaseModel{ID: "u1"},
		Cluster:   "c1",
		User:      "f1",
	}

	agentPrincipal := auth.Principal{ID: "a1", UserType: model.UserTypeGemExcite}
	items, err := env.uc.ListUploadedForCluster(context.Background(), agentPrincipal)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "u1", items[0].ID)
}
