package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "members.db")
	db, err := NewSQLiteDB(path)
	require.NoError(t, err)
	defer Close(db)

	_, err = db.Exec(`CREATE TABLE t (v TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t (v) VALUES (?)`, "x")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	require.Equal(t, 1, n)
}
