package dto

import "github.com/byron-a/ExciteTrade-backend/internal/model"

type WarehouseFilters struct {
	Q        string
	Type     string
	Location string
	Page     int
	PageSize int
}

// WarehouseDetail is a warehouse plus the clusters currently referencing it.
type WarehouseDetail struct {
	Warehouse model.Warehouse `json:"warehouse"`
	Clusters  []model.Cluster `json:"clusters"`
}
