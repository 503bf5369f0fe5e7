package model

// UploadedCommodity is a producer's physical delivery record against a
// request, awaiting quality check at a holding warehouse.
type UploadedCommodity struct {
	BaseModel
	Cluster       string                  `db:"cluster" json:"cluster"`
	Request       string                  `db:"request" json:"request"`
	User          string                  `db:"user_id" json:"user"`
	Warehouse     string                  `db:"warehouse" json:"warehouse"`
	Status        UploadedCommodityStatus `db:"status" json:"status"`
	Commodity     string                  `db:"commodity" json:"commodity"`
	Quantity      float64                 `db:"quantity" json:"quantity"`
	QuantityUnits string                  `db:"quantity_units" json:"quantity_units"`
	PricePerTonne float64                 `db:"price_per_tonne" json:"price_per_tonne"`
	ImageURL      string                  `db:"image_url" json:"image_url"`
}
