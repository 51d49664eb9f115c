package models

import "github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

// BackendPagination paging block returned with list responses.
type BackendPagination struct {
	Size  int `json:"size"`
	Page  int `json:"page"`
	Count int `json:"count"`
}

// MemberListModel GET /admin/api/v1/members
type MemberListModel struct {
	Items      []domain.Member   `json:"items"`
	Pagination BackendPagination `json:"pagination"`
}

// PollingCentersModel GET /api/v1/polling-centers
type PollingCentersModel struct {
	Centers              []domain.PollingCenter `json:"centers"`
	TotalPollingStations int                    `json:"total_polling_stations"`
	MapCenter            [2]float64             `json:"map_center"`
}
