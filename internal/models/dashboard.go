package models

// DashboardStats are the headline counters shown on the dashboard
type DashboardStats struct {
	TotalProducers    int `json:"totalProducers"`
	TotalProperties   int `json:"totalProperties"`
	TotalPcdProducers int `json:"totalPcdProducers"`
	TotalDomains      int `json:"totalDomains"`
}

// ListMeta is the pagination block of a paginated list response
type ListMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	LastPage   int `json:"lastPage"`
}
