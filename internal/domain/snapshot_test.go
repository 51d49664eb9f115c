package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot(t *testing.T) {
	tbl := &Table{
		Header: []string{"Horodateur", "Prénom", "Nom", "Téléphone", "Adresse (Quartier)", "Parrain"},
		Rows: [][]string{
			{"2025-10-01 10:00:00", "Awa", "Diop", "77 000 00 01", "Sanka", "Fatou"},
			{"2025-10-01 11:00:00", "Moussa", "Fall", "77 000 00 02", "Montagne"},
		},
	}
	s := BuildSnapshot(tbl)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, "Awa", s.Members[0].FirstName)
	assert.Equal(t, "Sanka", s.Members[0].Neighborhood)
	assert.Equal(t, "2025-10-01 10:00:00", s.Members[0].RegisteredAt)
	assert.Equal(t, map[string]string{"parrain": "Fatou"}, s.Members[0].Extra)
	assert.Nil(t, s.Members[1].Extra)
	assert.Equal(t, "adresse (quartier)", s.Fields[FieldNeighborhood])
	assert.True(t, s.Has(FieldPhone))

	phones := s.PhoneSet()
	assert.Contains(t, phones, "770000001")
	assert.Contains(t, phones, "770000002")
}

func TestNewSnapshot_ResolvesEveryField(t *testing.T) {
	s := NewSnapshot([]Member{{FirstName: "Awa"}})
	for _, rule := range ColumnRules() {
		assert.True(t, s.Has(rule.Field), "field %s", rule.Field)
	}
	assert.Equal(t, 1, s.Len())
}
