package dto

import "github.com/byron-a/ExciteTrade-backend/internal/model"

// UserRequestFilters narrows the per-producer assignment listing.
type UserRequestFilters struct {
	Cluster string
	User    string
	Request string
	Status  model.UserRequestStatus
}

// Overview summarizes a field agent's cluster requests by pipeline stage.
type Overview struct {
	Requests             []model.Request `json:"request"`
	NewRequest           int             `json:"newRequest"`
	InCultivationRequest int             `json:"inCultivationRequest"`
	HarvestedRequest     int             `json:"harvestedRequest"`
}
