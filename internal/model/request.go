package model

import (
	"database/sql/driver"
	"time"
)

type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *StringList) Scan(src any) error          { return jsonbScan(l, src) }

// Request is the per-order workflow unit handed to either a cluster's field
// agent or a warehouse storekeeper.
type Request struct {
	BaseModel
	Type           RequestType `db:"type" json:"type"`
	Order          string      `db:"order_id" json:"order"`
	SourceID       string      `db:"source_id" json:"source_id"`
	Source         string      `db:"source" json:"source"` // Cluster | Warehouse
	Status         OrderStatus `db:"status" json:"status"`
	UsersOnRequest StringList  `db:"users_on_request" json:"users_on_request"`
}

// NewRequest routes the request by type: storekeeper requests run against a
// warehouse and start seated, every other type runs against a cluster and
// starts at new-request.
func NewRequest(id string, reqType RequestType, orderID, sourceID string, now time.Time) *Request {
	r := &Request{
		BaseModel: BaseModel{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Type:           reqType,
		Order:          orderID,
		SourceID:       sourceID,
		Source:         RequestSourceCluster,
		Status:         OrderStatusNewRequest,
		UsersOnRequest: StringList{},
	}
	if reqType == RequestTypeStoreKeeper {
		r.Source = RequestSourceWarehouse
		r.Status = OrderStatusSeated
	}
	return r
}

// UserRequest assigns one producer to one request.
type UserRequest struct {
	BaseModel
	Cluster       string            `db:"cluster" json:"cluster"`
	Request       string            `db:"request" json:"request"`
	User          string            `db:"user_id" json:"user"`
	Status        UserRequestStatus `db:"status" json:"status"`
	Quantity      float64           `db:"quantity" json:"quantity"`
	QuantityUnits string            `db:"quantity_units" json:"quantity_units"`
}

const DefaultQuantityUnits = "tonne"
