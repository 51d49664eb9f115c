package domain

import "strings"

// ColumnRule maps a field to the header tokens that identify its column.
type ColumnRule struct {
	Field  Field
	Tokens []string
}

// columnRules is resolved in order; a column is claimed by at most one
// field, so "prenom" is taken by first_name before last_name's "nom" runs.
var columnRules = []ColumnRule{
	{Field: FieldRegisteredAt, Tokens: []string{"horodateur", "timestamp", "registered", "date d'inscription", "date d’inscription", "date inscription"}},
	{Field: FieldPhone, Tokens: []string{"tel", "phone"}},
	{Field: FieldNeighborhood, Tokens: []string{"adresse", "quartier", "address", "neighborhood"}},
	{Field: FieldFirstName, Tokens: []string{"prenom", "first"}},
	{Field: FieldLastName, Tokens: []string{"nom", "last"}},
	{Field: FieldNationalID, Tokens: []string{"cni", "carte", "national"}},
	{Field: FieldProfession, Tokens: []string{"profession", "metier"}},
	{Field: FieldCommittee, Tokens: []string{"comite", "committee", "cellule"}},
	{Field: FieldNotes, Tokens: []string{"note", "remarque", "commentaire", "observation"}},
}

// DefaultHeader is written when a destination has no header row yet.
var DefaultHeader = []string{
	"Horodateur",
	"Prénom",
	"Nom",
	"Téléphone",
	"Adresse (Quartier)",
	"CNI",
	"Profession",
	"Comité",
	"Notes",
}

// ColumnRules returns a copy of the resolution table.
func ColumnRules() []ColumnRule {
	out := make([]ColumnRule, len(columnRules))
	copy(out, columnRules)
	return out
}

// ResolveColumns maps each field to the index of the header column that
// represents it. header must already be normalized. An exact token match
// wins over a substring match. Fields without a column are absent.
func ResolveColumns(header []string) map[Field]int {
	claimed := make(map[int]bool, len(header))
	out := make(map[Field]int, len(columnRules))
	for _, rule := range columnRules {
		if i, ok := findColumn(header, claimed, rule.Tokens); ok {
			out[rule.Field] = i
			claimed[i] = true
		}
	}
	return out
}

func findColumn(header []string, claimed map[int]bool, tokens []string) (int, bool) {
	for i, h := range header {
		if claimed[i] {
			continue
		}
		for _, tok := range tokens {
			if h == tok {
				return i, true
			}
		}
	}
	for i, h := range header {
		if claimed[i] || h == "" {
			continue
		}
		for _, tok := range tokens {
			if strings.Contains(h, tok) {
				return i, true
			}
		}
	}
	return 0, false
}

// LayoutRow lays m out in the column order of a destination header.
// Columns no field claims are left blank. An empty header means the
// destination is new and DefaultHeader applies.
func LayoutRow(header []string, m Member) []string {
	if len(header) == 0 {
		header = DefaultHeader
	}
	row := make([]string, len(header))
	for f, i := range ResolveColumns(NormalizeHeaders(header)) {
		row[i] = m.Value(f)
	}
	return row
}
