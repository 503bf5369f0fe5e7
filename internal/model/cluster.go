package model

import "database/sql/driver"

// ProducerRef is an entry in a cluster's producers list. Entries are unique by
// ID and their Type always corresponds to the owning cluster's type.
type ProducerRef struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Type               UserType `json:"type"`
	ProductionCapacity float64  `json:"productionCapacity"`
}

type ProducerList []ProducerRef

func (l ProducerList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *ProducerList) Scan(src any) error          { return jsonbScan(l, src) }

// IndexOf locates a producer by (type, id); -1 if absent.
func (l ProducerList) IndexOf(t UserType, id string) int {
	for i, p := range l {
		if p.Type == t && p.ID == id {
			return i
		}
	}
	return -1
}

func (l ProducerList) Contains(id string) bool {
	for _, p := range l {
		if p.ID == id {
			return true
		}
	}
	return false
}

// OrderRequestRef records capacity consumed from a cluster by one order.
type OrderRequestRef struct {
	Quantity float64 `json:"quantity"`
	Order    string  `json:"order"`
}

type OrderRequestList []OrderRequestRef

func (l OrderRequestList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *OrderRequestList) Scan(src any) error          { return jsonbScan(l, src) }

// GemExciteAssigned holds the cluster-side half of the field-agent assignment.
type GemExciteAssigned struct {
	Assigned bool   `json:"assigned"`
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
}

func (g GemExciteAssigned) Value() (driver.Value, error) { return jsonbValue(g) }
func (g *GemExciteAssigned) Scan(src any) error          { return jsonbScan(g, src) }

// UnassignedAgent is the zero assignment written when an agent is detached.
func UnassignedAgent() GemExciteAssigned {
	return GemExciteAssigned{Assigned: false, Name: "Not-assigned"}
}

type Cluster struct {
	BaseModel
	Name          string      `db:"name" json:"name"`
	Slug          string      `db:"slug" json:"slug"`
	Type          ClusterType `db:"type" json:"type"`
	Description   string      `db:"description" json:"description"`
	CommodityName string      `db:"commodity_name" json:"commodity_name"`
	Location      string      `db:"location" json:"location"`
	ClusterCode   string      `db:"cluster_code" json:"cluster_code"`
	Rating        float64     `db:"rating" json:"rating"`
	CreatedBy     string      `db:"created_by" json:"created_by"`
	WarehouseID   *string     `db:"warehouse_id" json:"warehouse_id"`

	GemExciteAssigned GemExciteAssigned `db:"gem_excite_assigned" json:"gem_excite_assigned"`

	// Capacity ledger. ClusterCapacity and ClusterAvailable are derived from
	// Producers and OrderRequested; callers never write them directly.
	Producers        ProducerList     `db:"producers" json:"producers"`
	ClusterCapacity  float64          `db:"cluster_capacity" json:"cluster_capacity"`
	OrderRequested   OrderRequestList `db:"order_requested" json:"order_requested"`
	ClusterAvailable float64          `db:"cluster_available" json:"cluster_available"`
}
