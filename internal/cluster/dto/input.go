package dto

type CreateClusterInput struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Description   string `json:"description"`
	CommodityName string `json:"commodityName"`
	Location      string `json:"location"`
	WarehouseID   string `json:"warehouseId"`
}

type UpdateClusterInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	CommodityName string `json:"commodityName"`
}

type AttachProducerInput struct {
	ProducerID string `json:"producerId"`
}

type DetachInput struct {
	UserType string `json:"userType"`
	UserID   string `json:"userId"`
}
