package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusPreOrderChain(t *testing.T) {
	chain := []OrderStatus{
		OrderStatusNewRequest,
		OrderStatusPending,
		OrderStatusInCultivation,
		OrderStatusHarvested,
		OrderStatusQualityCheck,
		OrderStatusDepository,
		OrderStatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransition(chain[i+1]),
			"%s should advance to %s", chain[i], chain[i+1])
	}

	assert.False(t, OrderStatusNewRequest.CanTransition(OrderStatusInCultivation))
	assert.False(t, OrderStatusPending.CanTransition(OrderStatusNewRequest))
	assert.False(t, OrderStatusDelivered.CanTransition(OrderStatusPending))
}

func TestOrderStatusStorageChain(t *testing.T) {
	assert.True(t, OrderStatusSeated.CanTransition(OrderStatusAvailable))
	assert.True(t, OrderStatusAvailable.CanTransition(OrderStatusInTransit))
	assert.True(t, OrderStatusInTransit.CanTransition(OrderStatusDelivered))

	assert.False(t, OrderStatusSeated.CanTransition(OrderStatusInTransit))
	assert.False(t, OrderStatusSeated.CanTransition(OrderStatusPending))
}

func TestOrderStatusCancelFromAnyNonTerminal(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusNewRequest, OrderStatusPending, OrderStatusInCultivation,
		OrderStatusSeated, OrderStatusInTransit,
	} {
		assert.True(t, s.CanTransition(OrderStatusCancelled), "cancel from %s", s)
	}
	assert.False(t, OrderStatusDelivered.CanTransition(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransition(OrderStatusCancelled))
}

func TestUserRequestStatusChain(t *testing.T) {
	assert.True(t, UserRequestStatusPending.CanTransition(UserRequestStatusInCultivation))
	assert.True(t, UserRequestStatusInCultivation.CanTransition(UserRequestStatusUploaded))
	assert.True(t, UserRequestStatusUploaded.CanTransition(UserRequestStatusValidating))
	assert.True(t, UserRequestStatusValidating.CanTransition(UserRequestStatusDelivered))

	// A producer may upload straight from pending without marking cultivation.
	assert.True(t, UserRequestStatusPending.CanTransition(UserRequestStatusUploaded))

	assert.False(t, UserRequestStatusPending.CanTransition(UserRequestStatusValidating))
	assert.False(t, UserRequestStatusDelivered.CanTransition(UserRequestStatusPending))
}

func TestSeedStatus(t *testing.T) {
	assert.Equal(t, OrderStatusSeated, OrderTypeOrder.SeedStatus())
	assert.Equal(t, OrderStatusNewRequest, OrderTypePreOrder.SeedStatus())
}

func TestClusterTypeForProducer(t *testing.T) {
	ct, ok := ClusterTypeForProducer(UserTypeFarmer)
	require.True(t, ok)
	assert.Equal(t, ClusterTypeFarmer, ct)

	ct, ok = ClusterTypeForProducer(UserTypeMiner)
	require.True(t, ok)
	assert.Equal(t, ClusterTypeMiner, ct)

	_, ok = ClusterTypeForProducer(UserTypeOfftaker)
	assert.False(t, ok)
}

func TestNewRequestRouting(t *testing.T) {
	now := time.Now()

	r := NewRequest("req-1", RequestTypeStoreKeeper, "ord-1", "wh-1", now)
	assert.Equal(t, RequestSourceWarehouse, r.Source)
	assert.Equal(t, OrderStatusSeated, r.Status)

	for _, rt := range []RequestType{RequestTypeFarmer, RequestTypeMiner, RequestTypeGemExcite} {
		r := NewRequest("req-2", rt, "ord-2", "cl-1", now)
		assert.Equal(t, RequestSourceCluster, r.Source, "type %s", rt)
		assert.Equal(t, OrderStatusNewRequest, r.Status, "type %s", rt)
	}
}

func TestProducerListIndexOf(t *testing.T) {
	l := ProducerList{
		{ID: "a", Type: UserTypeFarmer},
		{ID: "b", Type: UserTypeMiner},
	}
	assert.Equal(t, 0, l.IndexOf(UserTypeFarmer, "a"))
	assert.Equal(t, 1, l.IndexOf(UserTypeMiner, "b"))
	assert.Equal(t, -1, l.IndexOf(UserTypeFarmer, "b"), "type and id must both match")
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("c"))
}

func TestUserAccessors(t *testing.T) {
	farmer := &User{
		UserType: UserTypeFarmer,
		Profile: Profile{Farmer: &FarmerProfile{
			CommodityProductionCapacity: 120,
			ClusterDetail:               &ClusterDetail{ClusterCode: "AB12"},
		}},
	}
	assert.Equal(t, 120.0, farmer.ProductionCapacity())
	require.NotNil(t, farmer.ClusterDetail())
	assert.Equal(t, "AB12", farmer.ClusterDetail().ClusterCode)
	assert.Nil(t, farmer.AssignedCluster())

	agent := &User{
		FirstName: "Ada",
		LastName:  "Obi",
		UserType:  UserTypeGemExcite,
		Profile: Profile{GemExcite: &GemExciteProfile{
			IsAssignedCluster: &AssignedCluster{Assigned: true, ClusterCode: "CD34"},
		}},
	}
	assert.Equal(t, "Ada Obi", agent.FullName())
	require.NotNil(t, agent.AssignedCluster())
	assert.True(t, agent.AssignedCluster().Assigned)
	assert.Nil(t, agent.ClusterDetail())

	offtaker := &User{UserType: UserTypeOfftaker}
	assert.Zero(t, offtaker.ProductionCapacity())
}
