package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"
)

// Dialect selects placeholder and DDL syntax.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// memberColumns is the members table layout; the names resolve through
// the same column rules as spreadsheet headers.
var memberColumns = []domain.Field{
	domain.FieldFirstName,
	domain.FieldLastName,
	domain.FieldPhone,
	domain.FieldNeighborhood,
	domain.FieldNationalID,
	domain.FieldProfession,
	domain.FieldCommittee,
	domain.FieldNotes,
	domain.FieldRegisteredAt,
}

// SQLMembersRepo stores members in a members table (postgres or sqlite).
// No unique constraint is placed on phone; duplicates are checked by the
// caller before writing.
type SQLMembersRepo struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLMembersRepo(db *sql.DB, dialect Dialect) *SQLMembersRepo {
	return &SQLMembersRepo{db: db, dialect: dialect}
}

func (r *SQLMembersRepo) Name() string { return string(r.dialect) }

// EnsureSchema creates the members table when absent.
func (r *SQLMembersRepo) EnsureSchema(ctx context.Context) error {
	id := "id BIGSERIAL PRIMARY KEY"
	if r.dialect == DialectSQLite {
		id = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	cols := []string{id}
	for _, f := range memberColumns {
		cols = append(cols, fmt.Sprintf("%s TEXT NOT NULL DEFAULT ''", f))
	}
	q := fmt.Sprintf("CREATE TABLE IF NOT EXISTS members (%s)", strings.Join(cols, ", "))
	if _, err := r.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create members table: %w", err)
	}
	return nil
}

func (r *SQLMembersRepo) LoadTable(ctx context.Context) (*domain.Table, error) {
	q := fmt.Sprintf("SELECT %s FROM members ORDER BY id", columnList())
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}
	defer rows.Close()

	header := make([]string, len(memberColumns))
	for i, f := range memberColumns {
		header[i] = string(f)
	}
	t := &domain.Table{Header: header, Rows: [][]string{}}
	for rows.Next() {
		vals := make([]sql.NullString, len(memberColumns))
		dest := make([]any, len(vals))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = v.String
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return t, nil
}

func (r *SQLMembersRepo) AppendMember(ctx context.Context, m domain.Member) error {
	args := make([]any, len(memberColumns))
	for i, f := range memberColumns {
		args[i] = m.Value(f)
	}
	q := fmt.Sprintf("INSERT INTO members (%s) VALUES (%s)", columnList(), r.placeholders(len(args)))
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *SQLMembersRepo) placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		if r.dialect == DialectPostgres {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return strings.Join(ph, ", ")
}

func columnList() string {
	names := make([]string, len(memberColumns))
	for i, f := range memberColumns {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
