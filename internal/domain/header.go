package domain

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Table is a raw tabular dataset as read from a backing source: the header
// row and the data rows below it. Rows may be ragged.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// NormalizeHeader trims, lowercases and strips accents. It is idempotent.
func NormalizeHeader(h string) string {
	// transformers carry state; build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(h))
	if err != nil {
		stripped = strings.TrimSpace(h)
	}
	return strings.ToLower(stripped)
}

// NormalizeHeaders applies NormalizeHeader to every entry.
func NormalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = NormalizeHeader(h)
	}
	return out
}

// Clean returns a copy of t with normalized headers, structurally empty
// columns dropped, duplicate header names removed (first occurrence wins)
// and fully blank rows skipped. Cell values are trimmed.
func (t *Table) Clean() *Table {
	if t == nil {
		return &Table{Header: []string{}, Rows: [][]string{}}
	}
	width := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	header := make([]string, 0, width)
	keep := make([]int, 0, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(t.Header) {
			name = NormalizeHeader(t.Header[i])
		}
		if name == "" {
			if columnBlank(t.Rows, i) {
				continue
			}
			name = fmt.Sprintf("column_%d", i+1)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		header = append(header, name)
		keep = append(keep, i)
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make([]string, len(keep))
		blank := true
		for j, i := range keep {
			if i < len(row) {
				out[j] = strings.TrimSpace(row[i])
			}
			if out[j] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, out)
	}
	return &Table{Header: header, Rows: rows}
}

func columnBlank(rows [][]string, col int) bool {
	for _, row := range rows {
		if col < len(row) && strings.TrimSpace(row[col]) != "" {
			return false
		}
	}
	return true
}

// SplitAtHeader treats the first offset rows of raw as decorative captions,
// the next row as the header and everything after it as data.
// It returns nil when raw holds no header row.
func SplitAtHeader(raw [][]string, offset int) *Table {
	if offset < 0 {
		offset = 0
	}
	if len(raw) <= offset {
		return nil
	}
	return &Table{Header: raw[offset], Rows: raw[offset+1:]}
}
