package model

import "database/sql/driver"

// ClusterDetail is the producer-side back-reference to the cluster holding the
// producer. It must stay in sync with the cluster's producers list; the
// membership manager owns both writes.
type ClusterDetail struct {
	ClusterID   string `json:"clusterId"`
	ClusterCode string `json:"clusterCode"`
	ClusterName string `json:"clusterName"`
}

// AssignedCluster is the field-agent-side back-reference mirroring
// Cluster.GemExciteAssigned.
type AssignedCluster struct {
	Assigned    bool   `json:"assigned"`
	ClusterCode string `json:"clusterCode,omitempty"`
	ClusterName string `json:"clusterName,omitempty"`
}

type OrderInProcess struct {
	Order string `json:"order"`
}

type FarmerProfile struct {
	FarmName                    string         `json:"farmName"`
	FarmArea                    string         `json:"farmArea"`
	FarmLocation                string         `json:"farmLocation"`
	CommodityName               string         `json:"commodityName"`
	CommodityProductionCapacity float64        `json:"commodityProductionCapacity"`
	CommodityType               CommodityType  `json:"commodityType"`
	ClusterDetail               *ClusterDetail `json:"clusterDetail,omitempty"`
}

type MinerProfile struct {
	MineName                    string         `json:"mineName"`
	MineLocation                string         `json:"mineLocation"`
	MineArea                    string         `json:"mineArea"`
	CommodityName               string         `json:"commodityName"`
	CommodityProductionCapacity float64        `json:"commodityProductionCapacity"`
	CommodityType               CommodityType  `json:"commodityType"`
	ClusterDetail               *ClusterDetail `json:"clusterDetail,omitempty"`
}

type GemExciteProfile struct {
	Area              string           `json:"area"`
	SourcingLocality  string           `json:"sourcingLocality"`
	AgroCommodity     string           `json:"agroCommodity"`
	CommodityType     CommodityType    `json:"commodityType"`
	ClusterType       ClusterType      `json:"clusterType"`
	IsAssignedCluster *AssignedCluster `json:"isAssignedCluster,omitempty"`
	OrdersInProcess   []OrderInProcess `json:"ordersInProcess,omitempty"`
}

type OfftakerProfile struct {
	CompanyName                 string   `json:"companyName"`
	CompanyCountry              string   `json:"companyCountry"`
	CompanyPhoneNumber          string   `json:"companyPhoneNumber"`
	CompanyPosition             string   `json:"companyPosition"`
	CompanyEmployeeCount        string   `json:"companyEmployeeCount"`
	CompanyWebsite              string   `json:"companyWebsite"`
	PreferredProducts           []string `json:"preferredProducts"`
	PreferredUnitsOfMeasurement string   `json:"preferredUnitsOfMeasurement"`
	PreferredCurrency           string   `json:"preferredCurrency"`
}

type AdminProfile struct {
	Access bool `json:"access"`
}

// Profile is the tagged variant backing the per-role profile column. Exactly
// one branch is populated, selected by User.UserType.
type Profile struct {
	Farmer    *FarmerProfile    `json:"farmer,omitempty"`
	Miner     *MinerProfile     `json:"miner,omitempty"`
	GemExcite *GemExciteProfile `json:"gemExcite,omitempty"`
	Offtaker  *OfftakerProfile  `json:"offtaker,omitempty"`
	Admin     *AdminProfile     `json:"admin,omitempty"`
}

func (p Profile) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *Profile) Scan(src any) error          { return jsonbScan(p, src) }

type User struct {
	BaseModel
	FirstName   string     `db:"first_name" json:"first_name"`
	LastName    string     `db:"last_name" json:"last_name"`
	Email       string     `db:"email" json:"email"`
	PhoneNumber string     `db:"phone_number" json:"phone_number"`
	UserType    UserType   `db:"user_type" json:"user_type"`
	Status      UserStatus `db:"status" json:"status"`
	Country     string     `db:"country" json:"country"`
	Profile     Profile    `db:"profile" json:"profile"`
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ClusterDetail returns the producer back-reference for farmer or miner users,
// nil for every other role.
func (u *User) ClusterDetail() *ClusterDetail {
	switch u.UserType {
	case UserTypeFarmer:
		if u.Profile.Farmer != nil {
			return u.Profile.Farmer.ClusterDetail
		}
	case UserTypeMiner:
		if u.Profile.Miner != nil {
			return u.Profile.Miner.ClusterDetail
		}
	}
	return nil
}

// ProductionCapacity returns the producer's declared capacity in tonnes, 0 for
// non-producer roles.
func (u *User) ProductionCapacity() float64 {
	switch u.UserType {
	case UserTypeFarmer:
		if u.Profile.Farmer != nil {
			return u.Profile.Farmer.CommodityProductionCapacity
		}
	case UserTypeMiner:
		if u.Profile.Miner != nil {
			return u.Profile.Miner.CommodityProductionCapacity
		}
	}
	return 0
}

// AssignedCluster returns the field agent's assignment back-reference, nil for
// any other role or an unassigned agent.
func (u *User) AssignedCluster() *AssignedCluster {
	if u.UserType == UserTypeGemExcite && u.Profile.GemExcite != nil {
		return u.Profile.GemExcite.IsAssignedCluster
	}
	return nil
}
