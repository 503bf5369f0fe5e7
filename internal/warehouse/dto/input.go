package dto

type CreateWarehouseInput struct {
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	Capacity        float64 `json:"capacity"`
	ManagerAssigned string  `json:"managerAssigned"`
}

type UpdateWarehouseInput struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

type AddBatchInput struct {
	Commodity     string  `json:"commodity"`
	Quantity      float64 `json:"quantity"`
	ClusterName   string  `json:"clusterName"`
	InventoryType string  `json:"inventoryType"`
	Order         string  `json:"order"`
	PricePerTonne float64 `json:"pricePerTonne"`
}
