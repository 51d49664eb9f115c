package domain

import (
	"fmt"
	"sort"
	"strings"
)

// NeighborhoodCount is one bar of the neighborhood chart.
type NeighborhoodCount struct {
	Neighborhood string `json:"neighborhood"`
	Count        int    `json:"count"`
}

// NeighborhoodStats groups members by neighborhood. Members with a blank
// neighborhood are only counted in Unspecified.
type NeighborhoodStats struct {
	Counts      map[string]int      `json:"counts"`
	Groups      map[string][]Member `json:"groups"`
	Ordered     []NeighborhoodCount `json:"ordered"`
	Unspecified int                 `json:"unspecified"`
	Total       int                 `json:"total"`
}

// GroupByNeighborhood counts and groups the snapshot's members. When the
// source has no neighborhood column the groupings are empty and the error
// matches ErrColumnNotFound.
func GroupByNeighborhood(s *Snapshot) (*NeighborhoodStats, error) {
	stats := &NeighborhoodStats{
		Counts:  map[string]int{},
		Groups:  map[string][]Member{},
		Ordered: []NeighborhoodCount{},
	}
	if s == nil {
		return stats, fmt.Errorf("%w: %s", ErrColumnNotFound, FieldNeighborhood)
	}
	stats.Total = len(s.Members)
	if !s.Has(FieldNeighborhood) {
		return stats, fmt.Errorf("%w: %s", ErrColumnNotFound, FieldNeighborhood)
	}

	for _, m := range s.Members {
		key := strings.TrimSpace(m.Neighborhood)
		if key == "" {
			stats.Unspecified++
			continue
		}
		stats.Counts[key]++
		stats.Groups[key] = append(stats.Groups[key], m)
	}

	for k, n := range stats.Counts {
		stats.Ordered = append(stats.Ordered, NeighborhoodCount{Neighborhood: k, Count: n})
	}
	sort.Slice(stats.Ordered, func(i, j int) bool {
		if stats.Ordered[i].Count != stats.Ordered[j].Count {
			return stats.Ordered[i].Count > stats.Ordered[j].Count
		}
		return stats.Ordered[i].Neighborhood < stats.Ordered[j].Neighborhood
	})
	return stats, nil
}
