package domain

// Snapshot is a fully loaded, read-only view of the member collection.
type Snapshot struct {
	// Columns is the cleaned header of the source.
	Columns []string `json:"columns"`
	// Fields maps each resolved field to its column name in Columns.
	Fields  map[Field]string `json:"fields"`
	Members []Member         `json:"members"`
}

// EmptySnapshot has no columns and no members.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Columns: []string{}, Fields: map[Field]string{}, Members: []Member{}}
}

// BuildSnapshot cleans t and maps its rows to members in source order.
func BuildSnapshot(t *Table) *Snapshot {
	clean := t.Clean()
	idx := ResolveColumns(clean.Header)

	fields := make(map[Field]string, len(idx))
	byCol := make(map[int]Field, len(idx))
	for f, i := range idx {
		fields[f] = clean.Header[i]
		byCol[i] = f
	}

	members := make([]Member, 0, len(clean.Rows))
	for _, row := range clean.Rows {
		var m Member
		for i, v := range row {
			if f, ok := byCol[i]; ok {
				m.SetValue(f, v)
				continue
			}
			if v == "" {
				continue
			}
			if m.Extra == nil {
				m.Extra = map[string]string{}
			}
			m.Extra[clean.Header[i]] = v
		}
		members = append(members, m)
	}
	return &Snapshot{Columns: clean.Header, Fields: fields, Members: members}
}

// NewSnapshot wraps already-typed members as if they came from a source
// laid out with DefaultHeader.
func NewSnapshot(members []Member) *Snapshot {
	t := &Table{Header: DefaultHeader}
	s := BuildSnapshot(t)
	s.Members = append([]Member{}, members...)
	return s
}

// Has reports whether the source carries a column for f.
func (s *Snapshot) Has(f Field) bool {
	_, ok := s.Fields[f]
	return ok
}

// Len returns the number of members.
func (s *Snapshot) Len() int {
	return len(s.Members)
}

// PhoneSet returns the normalized phones present in the snapshot.
func (s *Snapshot) PhoneSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		if p := NormalizePhone(m.Phone); p != "" {
			out[p] = struct{}{}
		}
	}
	return out
}
