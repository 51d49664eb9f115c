package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Field identifies a logical member attribute independently of the column
// name a given data source uses for it.
type Field string

const (
	FieldRegisteredAt Field = "registered_at"
	FieldFirstName    Field = "first_name"
	FieldLastName     Field = "last_name"
	FieldPhone        Field = "phone"
	FieldNeighborhood Field = "neighborhood"
	FieldNationalID   Field = "national_id"
	FieldProfession   Field = "profession"
	FieldCommittee    Field = "committee"
	FieldNotes        Field = "notes"
)

// RegisteredAtLayout is the timestamp format adapters write.
const RegisteredAtLayout = "2006-01-02 15:04:05"

// Member is one registrant. Values are kept as typed by the registrant;
// Phone is only normalized for comparison (see NormalizePhone).
type Member struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Neighborhood string `json:"neighborhood"`
	NationalID   string `json:"national_id,omitempty"`
	Profession   string `json:"profession,omitempty"`
	Committee    string `json:"committee,omitempty"`
	Notes        string `json:"notes,omitempty"`
	RegisteredAt string `json:"registered_at,omitempty"`

	// Extra holds columns no field rule claimed, keyed by normalized header.
	Extra map[string]string `json:"extra,omitempty"`
}

// Value returns the value of f.
func (m Member) Value(f Field) string {
	switch f {
	case FieldRegisteredAt:
		return m.RegisteredAt
	case FieldFirstName:
		return m.FirstName
	case FieldLastName:
		return m.LastName
	case FieldPhone:
		return m.Phone
	case FieldNeighborhood:
		return m.Neighborhood
	case FieldNationalID:
		return m.NationalID
	case FieldProfession:
		return m.Profession
	case FieldCommittee:
		return m.Committee
	case FieldNotes:
		return m.Notes
	}
	return ""
}

// SetValue assigns v to f. Unknown fields are ignored.
func (m *Member) SetValue(f Field, v string) {
	switch f {
	case FieldRegisteredAt:
		m.RegisteredAt = v
	case FieldFirstName:
		m.FirstName = v
	case FieldLastName:
		m.LastName = v
	case FieldPhone:
		m.Phone = v
	case FieldNeighborhood:
		m.Neighborhood = v
	case FieldNationalID:
		m.NationalID = v
	case FieldProfession:
		m.Profession = v
	case FieldCommittee:
		m.Committee = v
	case FieldNotes:
		m.Notes = v
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (m Member) Trimmed() Member {
	out := m
	for _, rule := range columnRules {
		out.SetValue(rule.Field, strings.TrimSpace(m.Value(rule.Field)))
	}
	return out
}

// Validate checks the fields a submission must carry.
func (m Member) Validate(requireNeighborhood bool) error {
	required := []Field{FieldFirstName, FieldLastName, FieldPhone}
	if requireNeighborhood {
		required = append(required, FieldNeighborhood)
	}
	for _, f := range required {
		if strings.TrimSpace(m.Value(f)) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidationFailed, f)
		}
	}
	if !strings.ContainsFunc(NormalizePhone(m.Phone), unicode.IsDigit) {
		return fmt.Errorf("%w: phone has no digits", ErrValidationFailed)
	}
	return nil
}
