package model

import (
	"database/sql/driver"
	"time"
)

// CommodityBatch is a batch-tracked inventory entry inside a warehouse.
type CommodityBatch struct {
	Commodity     string        `json:"commodity"`
	BatchID       string        `json:"batchId"`
	Quantity      float64       `json:"quantity"`
	Entry         time.Time     `json:"entry"`
	ClusterName   string        `json:"clusterName,omitempty"`
	InventoryType InventoryType `json:"inventoryType"`
	Order         string        `json:"order,omitempty"`
	PricePerTonne float64       `json:"pricePerTonne"`
}

type CommodityBatchList []CommodityBatch

func (l CommodityBatchList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *CommodityBatchList) Scan(src any) error          { return jsonbScan(l, src) }

type Warehouse struct {
	BaseModel
	Type            WarehouseType      `db:"type" json:"type"`
	Name            string             `db:"name" json:"name"`
	Location        string             `db:"location" json:"location"`
	CreatedBy       string             `db:"created_by" json:"created_by"`
	Capacity        float64            `db:"capacity" json:"capacity"`
	ManagerAssigned string             `db:"manager_assigned" json:"manager_assigned"`
	Commodities     CommodityBatchList `db:"commodities" json:"commodities"`
}
