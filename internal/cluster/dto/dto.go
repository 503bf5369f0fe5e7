package dto

type ClusterFilters struct {
	Q         string
	Location  string
	Commodity string
	Type      string
	Page      int
	PageSize  int
}
