package cluster

import "github.com/byron-a/ExciteTrade-backend/internal/model"

// RecomputeCapacity rederives the cluster's capacity ledger from its
// authoritative lists and writes the result back onto c. Every mutation entry
// point (attach, detach, order allocation) calls this immediately before
// persisting, so the two derived fields can never go stale.
//
// Available capacity is not clamped: requested quantity beyond capacity yields
// a negative value, which is the allocation caller's concern to surface.
func RecomputeCapacity(c *model.Cluster) (capacity, available float64) {
	for _, p := range c.Producers {
		capacity += p.ProductionCapacity
	}
	requested := 0.0
	for _, r := range c.OrderRequested {
		requested += r.Quantity
	}
	available = capacity - requested

	c.ClusterCapacity = capacity
	c.ClusterAvailable = available
	return capacity, available
}
