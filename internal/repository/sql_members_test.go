package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Laye1997/malika-bi-nu-begg-d/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T, dialect Dialect) (*sql.DB, sqlmock.Sqlmock, *SQLMembersRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewSQLMembersRepo(db, dialect)
}

func memberColumnNames() []string {
	names := make([]string, len(memberColumns))
	for i, f := range memberColumns {
		names[i] = string(f)
	}
	return names
}

func TestSQLMembersRepo_LoadTable(t *testing.T) {
	db, mock, repo := setupMockDB(t, DialectPostgres)
	defer db.Close()

	rows := sqlmock.NewRows(memberColumnNames()).
		AddRow("Awa", "Diop", "77 000 00 01", "Sanka", "", "", "", "", "2025-10-01 10:00:00").
		AddRow("Moussa", "Fall", "77 000 00 02", nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`SELECT first_name, last_name, phone, neighborhood`).WillReturnRows(rows)

	tbl, err := repo.LoadTable(context.Background())
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, memberColumnNames(), tbl.Header)
	assert.Equal(t, "", tbl.Rows[1][3])

	s := domain.BuildSnapshot(tbl)
	assert.Equal(t, "Sanka", s.Members[0].Neighborhood)
	assert.Equal(t, "2025-10-01 10:00:00", s.Members[0].RegisteredAt)
	assert.True(t, s.Has(domain.FieldNeighborhood))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMembersRepo_LoadTableError(t *testing.T) {
	db, mock, repo := setupMockDB(t, DialectPostgres)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection refused"))
	_, err := repo.LoadTable(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMembersRepo_AppendMember_Postgres(t *testing.T) {
	db, mock, repo := setupMockDB(t, DialectPostgres)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO members \(first_name, .*\) VALUES \(\$1, \$2, .*\$9\)`).
		WithArgs("Awa", "Diop", "77 000 00 01", "Sanka", "", "", "", "", "2025-10-01 10:00:00").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.AppendMember(context.Background(), domain.Member{
		FirstName: "Awa", LastName: "Diop", Phone: "77 000 00 01", Neighborhood: "Sanka",
		RegisteredAt: "2025-10-01 10:00:00",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMembersRepo_AppendMember_SQLitePlaceholders(t *testing.T) {
	db, mock, repo := setupMockDB(t, DialectSQLite)
	defer db.Close()

	mock.ExpectExec(`VALUES \(\?, \?, \?, \?, \?, \?, \?, \?, \?\)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.AppendMember(context.Background(), domain.Member{FirstName: "Awa"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMembersRepo_EnsureSchema(t *testing.T) {
	db, mock, repo := setupMockDB(t, DialectPostgres)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS members \(id BIGSERIAL PRIMARY KEY, first_name TEXT`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
