package dto

type UserAssignment struct {
	UserID        string  `json:"userId"`
	Quantity      float64 `json:"quantity"`
	QuantityUnits string  `json:"quantityUnits"`
}

type AssignUsersInput struct {
	Users []UserAssignment `json:"users"`
}

type AdvanceInput struct {
	Status string `json:"status"`
}
