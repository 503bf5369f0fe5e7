package model

import "time"

type Order struct {
	BaseModel
	Offtaker          string      `db:"offtaker" json:"offtaker"`
	Cluster           *string     `db:"cluster" json:"cluster"` // pre-order path
	Storage           *string     `db:"storage" json:"storage"` // order path (warehouse lot)
	SelectedWarehouse string      `db:"selected_warehouse" json:"selected_warehouse"`
	Quantity          float64     `db:"quantity" json:"quantity"`
	OrderType         OrderType   `db:"order_type" json:"order_type"`
	Status            OrderStatus `db:"status" json:"status"`
	TrackingID        string      `db:"tracking_id" json:"tracking_id"`

	// Financial ledger fields. Stored at creation time, not invariant-checked;
	// payment computation is out of scope.
	PricePerTonne   float64 `db:"price_per_tonne" json:"price_per_tonne"`
	DepositPaid     bool    `db:"deposit_paid" json:"deposit_paid"`
	DepositAmount   float64 `db:"deposit_amount" json:"deposit_amount"`
	RemainingAmount float64 `db:"remaining_amount" json:"remaining_amount"`
	ShippingCost    float64 `db:"shipping_cost" json:"shipping_cost"`
	VAT             float64 `db:"vat" json:"vat"`
	TotalAmount     float64 `db:"total_amount" json:"total_amount"`

	EstimatedDeliveryDate *time.Time `db:"estimated_delivery_date" json:"estimated_delivery_date"`
}

// SeedStatus returns the initial status forced by the order type: orders drawn
// from warehouse stock skip the cultivation pipeline and start seated,
// pre-orders start at new-request.
func (t OrderType) SeedStatus() OrderStatus {
	if t == OrderTypeOrder {
		return OrderStatusSeated
	}
	return OrderStatusNewRequest
}

// NewOrder builds an order with its status seeded from the order type. The
// cluster/storage reference is set by the caller according to the path taken.
func NewOrder(id, offtakerID, selectedWarehouseID, trackingID string, orderType OrderType, quantity float64, now time.Time) *Order {
	return &Order{
		BaseModel: BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Offtaker:          offtakerID,
		SelectedWarehouse: selectedWarehouseID,
		Quantity:          quantity,
		OrderType:         orderType,
		Status:            orderType.SeedStatus(),
		TrackingID:        trackingID,
	}
}
