package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelCaption is written in A1 of new files that reserve caption rows.
const ExcelCaption = "Base de données MBB"

// ExcelMembersRepo stores members in one worksheet of a local .xlsx file.
// The header row sits below HeaderOffset caption rows.
type ExcelMembersRepo struct {
	path         string
	sheet        string
	headerOffset int
	create       bool
	logger       *zap.Logger

	// serialises file access within this process only
	mu sync.Mutex
}

func NewExcelMembersRepo(path, sheet string, headerOffset int, createIfMissing bool, logger *zap.Logger) *ExcelMembersRepo {
	if headerOffset < 0 {
		headerOffset = 0
	}
	return &ExcelMembersRepo{
		path:         path,
		sheet:        sheet,
		headerOffset: headerOffset,
		create:       createIfMissing,
		logger:       logger,
	}
}

func (r *ExcelMembersRepo) Name() string { return "excel" }

func (r *ExcelMembersRepo) LoadTable(_ context.Context) (*domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", r.sheet, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q not found in %s", ErrNoHeader, r.sheet, r.path)
	}
	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}
	t := domain.SplitAtHeader(rows, r.headerOffset)
	if t == nil {
		return nil, fmt.Errorf("%w: sheet %q at offset %d", ErrNoHeader, r.sheet, r.headerOffset)
	}
	return t, nil
}

func (r *ExcelMembersRepo) AppendMember(_ context.Context, m domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(r.sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(r.sheet); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
	}
	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}

	var header []string
	next := len(rows) + 1
	if len(rows) <= r.headerOffset {
		header = domain.DefaultHeader
		if err := r.writeHeader(f, len(rows) == 0); err != nil {
			return err
		}
		next = r.headerOffset + 2
	} else {
		header = rows[r.headerOffset]
	}

	if err := setRow(f, r.sheet, next, domain.LayoutRow(header, m)); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	r.logger.Debug("Member row written",
		zap.String("path", r.path),
		zap.String("sheet", r.sheet),
		zap.Int("row", next),
	)
	return nil
}

// open opens the workbook, creating it with a header row when allowed.
func (r *ExcelMembersRepo) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(r.path)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || !r.create {
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	if err := r.createFile(); err != nil {
		return nil, err
	}
	r.logger.Info("Created members workbook", zap.String("path", r.path), zap.String("sheet", r.sheet))
	return excelize.OpenFile(r.path)
}

func (r *ExcelMembersRepo) createFile() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o750); err != nil {
		return fmt.Errorf("create dirs: %w", err)
	}
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(r.sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if r.sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	if err := r.writeHeader(f, true); err != nil {
		return err
	}
	if err := f.SaveAs(r.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	return nil
}

func (r *ExcelMembersRepo) writeHeader(f *excelize.File, withCaption bool) error {
	if withCaption && r.headerOffset > 0 {
		if err := f.SetCellValue(r.sheet, "A1", ExcelCaption); err != nil {
			return fmt.Errorf("failed to write caption: %w", err)
		}
	}
	return setRow(f, r.sheet, r.headerOffset+1, domain.DefaultHeader)
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
