package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepository_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(openTestDB(t))

	v, err := r.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Set(ctx, "email", []byte("ana@factorg.cl")))
	require.NoError(t, r.Set(ctx, "email", []byte("luis@factorg.cl")))

	v, err = r.Get(ctx, "email")
	require.NoError(t, err)
	assert.Equal(t, []byte("luis@factorg.cl"), v)

	require.NoError(t, r.Delete(ctx, "email"))
	v, err = r.Get(ctx, "email")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSessions_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewSessions(db, "console-secret")

	email, rt, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
	assert.Empty(t, rt)

	require.NoError(t, s.Save(ctx, "ana@factorg.cl", "rt-1"))

	email, rt, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@factorg.cl", email)
	assert.Equal(t, "rt-1", rt)

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = 'refresh_token'`).Scan(&raw))
	assert.NotContains(t, string(raw), "rt-1", "token is sealed at rest")

	require.NoError(t, s.Clear(ctx))
	email, rt, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
	assert.Empty(t, rt)
}

func TestSessions_WrongSecret(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, NewSessions(db, "first").Save(ctx, "ana@factorg.cl", "rt-1"))

	email, rt, err := NewSessions(db, "second").Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupted)
	assert.Equal(t, "ana@factorg.cl", email)
	assert.Empty(t, rt)
}

func TestRepository_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).WithArgs("email").WillReturnError(boom)
	mock.ExpectExec(`INSERT INTO metadata`).WithArgs("email", []byte("x")).WillReturnError(boom)
	mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(boom)

	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err = r.Get(ctx, "email")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, r.Set(ctx, "email", []byte("x")), boom)
	assert.ErrorIs(t, r.Clear(ctx), boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
