package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Laye1997/malika-bi-nu-begg-d/common/database"
	"github.com/Laye1997/malika-bi-nu-begg-d/internal/config"

	"go.uber.org/zap"
)

// Open builds the backend selected by cfg.Members.Backend. The returned
// close function releases any connection the backend holds.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (MembersRepo, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Members.Backend {
	case config.BackendMemory:
		return NewMemoryMembersRepo(nil), noop, nil

	case config.BackendExcel:
		return NewExcelMembersRepo(cfg.Excel.Path, cfg.Excel.Sheet, cfg.Excel.HeaderOffset, cfg.Excel.CreateIfMissing, logger), noop, nil

	case config.BackendRemote:
		return NewRemoteFormMembersRepo(RemoteFormOptions{
			CSVURL:         cfg.Remote.CSVURL,
			FormURL:        cfg.Remote.FormURL,
			HeaderOffset:   cfg.Remote.HeaderOffset,
			FormFields:     cfg.Remote.FormFields,
			AcceptedStatus: cfg.Remote.AcceptedStatus,
			Timeout:        cfg.Remote.Timeout,
		}, logger), noop, nil

	case config.BackendSheets:
		repo, err := NewSheetsMembersRepo(ctx, SheetsOptions{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			Sheet:           cfg.Sheets.Sheet,
			CredentialsFile: cfg.Sheets.CredentialsFile,
			HeaderOffset:    cfg.Sheets.HeaderOffset,
			Timeout:         cfg.Sheets.Timeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		return repo, noop, nil

	case config.BackendPostgres:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return openSQL(ctx, db, DialectPostgres)

	case config.BackendSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return openSQL(ctx, db, DialectSQLite)
	}
	return nil, nil, fmt.Errorf("unknown members backend %q", cfg.Members.Backend)
}

func openSQL(ctx context.Context, db *sql.DB, dialect Dialect) (MembersRepo, func() error, error) {
	repo := NewSQLMembersRepo(db, dialect)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, db.Close, nil
}
