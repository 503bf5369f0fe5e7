package dto

type UploadCommodityInput struct {
	RequestID     string  `json:"requestId"`
	WarehouseID   string  `json:"warehouseId"`
	Commodity     string  `json:"commodity"`
	Quantity      float64 `json:"quantity"`
	QuantityUnits string  `json:"quantityUnits"`
	PricePerTonne float64 `json:"pricePerTonne"`
	ImageURL      string  `json:"imageUrl"`
}
