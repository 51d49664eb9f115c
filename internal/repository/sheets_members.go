package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsMembersRepo stores members in one tab of a spreadsheet reached
// through the Sheets API with service-account credentials.
type SheetsMembersRepo struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
	headerOffset  int
	timeout       time.Duration
	logger        *zap.Logger
}

// SheetsOptions configures SheetsMembersRepo.
type SheetsOptions struct {
	SpreadsheetID   string
	Sheet           string
	CredentialsFile string
	HeaderOffset    int
	Timeout         time.Duration
}

// NewSheetsMembersRepo builds the API client. clientOpts replace the
// credentials-file option when given.
func NewSheetsMembersRepo(ctx context.Context, opts SheetsOptions, logger *zap.Logger, clientOpts ...option.ClientOption) (*SheetsMembersRepo, error) {
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id not configured")
	}
	if len(clientOpts) == 0 {
		clientOpts = []option.ClientOption{
			option.WithCredentialsFile(opts.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsScope),
		}
	}
	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.HeaderOffset < 0 {
		opts.HeaderOffset = 0
	}
	return &SheetsMembersRepo{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheet:         opts.Sheet,
		headerOffset:  opts.HeaderOffset,
		timeout:       opts.Timeout,
		logger:        logger,
	}, nil
}

func (r *SheetsMembersRepo) Name() string { return "sheets" }

func (r *SheetsMembersRepo) LoadTable(ctx context.Context) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	vr, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, quoteSheet(r.sheet)).Context(ctx).Do()
	if err != nil {
		r.logger.Error("Sheets read failed", zap.String("sheet", r.sheet), zap.Error(err))
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}
	t := domain.SplitAtHeader(toStrings(vr.Values), r.headerOffset)
	if t == nil {
		return nil, fmt.Errorf("%w: sheet %q at offset %d", ErrNoHeader, r.sheet, r.headerOffset)
	}
	return t, nil
}

func (r *SheetsMembersRepo) AppendMember(ctx context.Context, m domain.Member) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	headerRow := r.headerOffset + 1
	headerRange := fmt.Sprintf("%s!%d:%d", quoteSheet(r.sheet), headerRow, headerRow)
	vr, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	var header []string
	if rows := toStrings(vr.Values); len(rows) > 0 && len(rows[0]) > 0 {
		header = rows[0]
	} else {
		header = domain.DefaultHeader
		_, err := r.svc.Spreadsheets.Values.Update(r.spreadsheetID, fmt.Sprintf("%s!A%d", quoteSheet(r.sheet), headerRow),
			&sheets.ValueRange{Values: [][]interface{}{toInterfaces(header)}}).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
	}

	row := domain.LayoutRow(header, m)
	_, err = r.svc.Spreadsheets.Values.Append(r.spreadsheetID, fmt.Sprintf("%s!A%d", quoteSheet(r.sheet), headerRow),
		&sheets.ValueRange{Values: [][]interface{}{toInterfaces(row)}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		r.logger.Error("Sheets append failed", zap.String("sheet", r.sheet), zap.Error(err))
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
