package dto

import "time"

type SelectedWarehouse struct {
	WarehouseID   string `json:"warehouseId"`
	WarehouseType string `json:"warehouseType"`
}

type ClusterItem struct {
	ClusterID string  `json:"clusterId"`
	Quantity  float64 `json:"quantity"`
}

type StorageItem struct {
	WarehouseID   string  `json:"warehouseId"`
	Quantity      float64 `json:"quantity"`
	PricePerTonne float64 `json:"pricePerTonne"`
}

// CheckoutInput carries a buyer's checkout intent: pre-orders list clusters,
// orders list storage warehouses. The selected warehouse is the destination
// in both paths.
type CheckoutInput struct {
	SelectedWarehouse     SelectedWarehouse `json:"selectedWarehouse"`
	OrderType             string            `json:"orderType"`
	EstimatedDeliveryDate *time.Time        `json:"EDD"`
	Clusters              []ClusterItem     `json:"clusters"`
	Storages              []StorageItem     `json:"storages"`
}
