package domain

// PollingCenter is a voting location in the commune.
type PollingCenter struct {
	Name            string  `json:"name"`
	PollingStations int     `json:"polling_stations"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
}

// Commune map centre (Malika).
const (
	CommuneLat = 14.7889
	CommuneLon = -17.3090
)

// DefaultPollingCenters lists the commune's voting centres.
var DefaultPollingCenters = []PollingCenter{
	{Name: "École Malika Montagne", PollingStations: 14, Lat: 14.7889, Lon: -17.3085},
	{Name: "École Privée Sanka", PollingStations: 20, Lat: 14.7858, Lon: -17.3120},
	{Name: "École Seydi Anta Gadiaga", PollingStations: 18, Lat: 14.7915, Lon: -17.3048},
}

// TotalPollingStations sums the stations across centers.
func TotalPollingStations(centers []PollingCenter) int {
	total := 0
	for _, c := range centers {
		total += c.PollingStations
	}
	return total
}
