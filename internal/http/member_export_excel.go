package httpapi

import (
	"bytes"
	"fmt"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
	"github.com/xuri/excelize/v2"
)

const membersExportSheet = "Membres"

// GenerateMembersExport renders the snapshot as an xlsx workbook, one row
// per member, using the source's own header.
func GenerateMembersExport(snap *domain.Snapshot) ([]byte, error) {
	header := snap.Columns
	if len(header) == 0 {
		header = domain.DefaultHeader
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(membersExportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(membersExportSheet, cell, name); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(membersExportSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(membersExportSheet, colName, colName, 20); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	byColumn := make(map[string]domain.Field, len(snap.Fields))
	for field, col := range snap.Fields {
		byColumn[col] = field
	}

	for i, m := range snap.Members {
		row := i + 2
		for col, name := range header {
			var v string
			if field, ok := byColumn[name]; ok {
				v = m.Value(field)
			} else {
				v = m.Extra[name]
			}
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(membersExportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	return buf.Bytes(), nil
}
