package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMigrations = fstest.MapFS{
	"00001_sessions.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE sessions (key TEXT PRIMARY KEY, value BLOB);

-- +goose Down
DROP TABLE sessions;
`)},
}

func TestMigrate_AppliesAndIsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db, testMigrations, "sqlite3"))
	require.NoError(t, Migrate(ctx, db, testMigrations, "sqlite3"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='sessions'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrate_BadDialect(t *testing.T) {
	db := openDB(t)
	err := Migrate(context.Background(), db, testMigrations, "oracle-ish")
	assert.Error(t, err)
}

func TestMigrate_WrapsGooseError(t *testing.T) {
	old := gooseUpContext
	t.Cleanup(func() { gooseUpContext = old })

	boom := errors.New("boom")
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return boom
	}

	err := Migrate(context.Background(), openDB(t), testMigrations, "sqlite3")
	assert.ErrorIs(t, err, boom)
}
