package httpapi

import (
	"net/http"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/models"
)

type PollingCenterHandler struct {
	Centers []domain.PollingCenter
}

func NewPollingCenterHandler(centers []domain.PollingCenter) *PollingCenterHandler {
	if centers == nil {
		centers = domain.DefaultPollingCenters
	}
	return &PollingCenterHandler{Centers: centers}
}

// List GET /api/v1/polling-centers
func (h *PollingCenterHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(models.PollingCentersModel{
		Centers:              h.Centers,
		TotalPollingStations: domain.TotalPollingStations(h.Centers),
		MapCenter:            [2]float64{domain.CommuneLat, domain.CommuneLon},
	}))
}
