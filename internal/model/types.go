package model

// Enum string values are the platform's wire values; they are stored as-is.

type UserType string

const (
	UserTypeAdmin       UserType = "Admin"
	UserTypeOfftaker    UserType = "Offtaker"
	UserTypeMiner       UserType = "Miner"
	UserTypeFarmer      UserType = "Farmer"
	UserTypeGemExcite   UserType = "GemExcite"
	UserTypeGemAdmin    UserType = "GemAdmin"
	UserTypeStoreKeeper UserType = "StoreKeeper"
)

// IsProducer reports whether the user type contributes production capacity.
func (t UserType) IsProducer() bool {
	return t == UserTypeFarmer || t == UserTypeMiner
}

type UserStatus string

const (
	UserStatusPending UserStatus = "Pending"
	UserStatusActive  UserStatus = "Active"
	UserStatusBlocked UserStatus = "Blocked"
)

type ClusterType string

const (
	ClusterTypeFarmer ClusterType = "farmer"
	ClusterTypeMiner  ClusterType = "miner"
)

// ClusterTypeForProducer maps a producer user type to the cluster type that
// may hold it.
func ClusterTypeForProducer(t UserType) (ClusterType, bool) {
	switch t {
	case UserTypeFarmer:
		return ClusterTypeFarmer, true
	case UserTypeMiner:
		return ClusterTypeMiner, true
	default:
		return "", false
	}
}

type WarehouseType string

const (
	WarehouseTypeBonded  WarehouseType = "bonded"
	WarehouseTypeHolding WarehouseType = "holding"
)

type InventoryType string

const (
	InventoryTypeStorage  InventoryType = "storage"
	InventoryTypePreOrder InventoryType = "pre-Order"
)

type OrderStatus string

const (
	OrderStatusNewRequest    OrderStatus = "new-request"
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusInCultivation OrderStatus = "in-cultivation"
	OrderStatusHarvested     OrderStatus = "harvested"
	OrderStatusQualityCheck  OrderStatus = "quality-check"
	OrderStatusDepository    OrderStatus = "depository"
	OrderStatusSeated        OrderStatus = "seated"
	OrderStatusAvailable     OrderStatus = "available"
	OrderStatusInTransit     OrderStatus = "in-transit"
	OrderStatusDelivered     OrderStatus = "delivered"
	OrderStatusCancelled     OrderStatus = "canceled"
)

// orderStatusNext holds the forward edges of the two order pipelines: the
// cultivation pipeline for pre-orders and the seated pipeline for orders drawn
// from warehouse stock. Cancellation is handled separately in CanTransition.
var orderStatusNext = map[OrderStatus]OrderStatus{
	OrderStatusNewRequest:    OrderStatusPending,
	OrderStatusPending:       OrderStatusInCultivation,
	OrderStatusInCultivation: OrderStatusHarvested,
	OrderStatusHarvested:     OrderStatusQualityCheck,
	OrderStatusQualityCheck:  OrderStatusDepository,
	OrderStatusDepository:    OrderStatusDelivered,
	OrderStatusSeated:        OrderStatusAvailable,
	OrderStatusAvailable:     OrderStatusInTransit,
	OrderStatusInTransit:     OrderStatusDelivered,
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether next is a legal successor of s. Any
// non-terminal status may move to canceled.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderStatusNext[s] == next
}

type OrderType string

const (
	OrderTypePreOrder OrderType = "pre-order"
	OrderTypeOrder    OrderType = "order"
)

type RequestType string

const (
	RequestTypeFarmer      RequestType = "farmer"
	RequestTypeMiner       RequestType = "miner"
	RequestTypeGemExcite   RequestType = "gemExcite"
	RequestTypeStoreKeeper RequestType = "storekeeper"
)

// Request source discriminators. A request routes either through a cluster
// (field-agent flow) or a warehouse (storekeeper flow).
const (
	RequestSourceCluster   = "Cluster"
	RequestSourceWarehouse = "Warehouse"
)

type UserRequestStatus string

const (
	UserRequestStatusPending       UserRequestStatus = "pending"
	UserRequestStatusInCultivation UserRequestStatus = "in-cultivation"
	UserRequestStatusUploaded      UserRequestStatus = "uploaded"
	UserRequestStatusValidating    UserRequestStatus = "validating"
	UserRequestStatusDelivered     UserRequestStatus = "delivered"
)

var userRequestStatusNext = map[UserRequestStatus]UserRequestStatus{
	UserRequestStatusPending:       UserRequestStatusInCultivation,
	UserRequestStatusInCultivation: UserRequestStatusUploaded,
	UserRequestStatusUploaded:      UserRequestStatusValidating,
	UserRequestStatusValidating:    UserRequestStatusDelivered,
}

// CanTransition reports whether next follows s in the producer-assignment
// chain. Cultivation may be skipped when a producer uploads directly against a
// pending assignment.
func (s UserRequestStatus) CanTransition(next UserRequestStatus) bool {
	if userRequestStatusNext[s] == next {
		return true
	}
	return s == UserRequestStatusPending && next == UserRequestStatusUploaded
}

type UploadedCommodityStatus string

const (
	UploadedCommodityStatusPending UploadedCommodityStatus = "pending"
	UploadedCommodityStatusPassed  UploadedCommodityStatus = "passed-quality-check"
	UploadedCommodityStatusFailed  UploadedCommodityStatus = "failed-quality-check"
)

type CommodityType string

const (
	CommodityTypeAgricProduce         CommodityType = "AgricProduce"
	CommodityTypeSolidMinerals        CommodityType = "SolidMinerals"
	CommodityTypeProcessedCommodities CommodityType = "ProcessedCommodities"
)
