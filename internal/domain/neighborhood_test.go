package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByNeighborhood(t *testing.T) {
	s := NewSnapshot([]Member{
		{Neighborhood: "Sanka"},
		{Neighborhood: "Sanka"},
		{Neighborhood: "Montagne"},
		{Neighborhood: ""},
	})
	stats, err := GroupByNeighborhood(s)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Sanka": 2, "Montagne": 1}, stats.Counts)
	assert.Equal(t, 1, stats.Unspecified)
	assert.Equal(t, 4, stats.Total)
	assert.Len(t, stats.Groups["Sanka"], 2)
	assert.Equal(t, []NeighborhoodCount{{"Sanka", 2}, {"Montagne", 1}}, stats.Ordered)

	sum := stats.Unspecified
	for _, n := range stats.Counts {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
}

func TestGroupByNeighborhood_ColumnNotFound(t *testing.T) {
	s := BuildSnapshot(&Table{
		Header: []string{"Prénom", "Nom"},
		Rows:   [][]string{{"Awa", "Diop"}},
	})
	stats, err := GroupByNeighborhood(s)
	assert.ErrorIs(t, err, ErrColumnNotFound)
	require.NotNil(t, stats)
	assert.Empty(t, stats.Counts)
	assert.Empty(t, stats.Groups)
	assert.Equal(t, 1, stats.Total)
}

func TestGroupByNeighborhood_TieOrder(t *testing.T) {
	s := NewSnapshot([]Member{{Neighborhood: "Sanka"}, {Neighborhood: "Montagne"}})
	stats, err := GroupByNeighborhood(s)
	require.NoError(t, err)
	assert.Equal(t, "Montagne", stats.Ordered[0].Neighborhood)
}
