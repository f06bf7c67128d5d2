// Package store keeps the console's session between runs in a local SQLite
// file: the signed-in email and the refresh token, sealed with AES-GCM.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/factorg/internal/cli/store/migrations"
	"github.com/dmitrijs2005/factorg/internal/cryptox"
	"github.com/dmitrijs2005/factorg/internal/dbx"
	_ "modernc.org/sqlite"
)

const (
	keyEmail        = "email"
	keyRefreshToken = "refresh_token"
	keyTokenNonce   = "refresh_token_nonce"
)

// ErrCorrupted is returned when the sealed token cannot be opened, usually
// because the configured secret changed.
var ErrCorrupted = errors.New("stored session cannot be decrypted")

// Open opens (creating if needed) the sqlite file at path and applies the
// schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := dbx.Migrate(ctx, db, migrations.Migrations, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns nil, nil for a missing key.
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata`); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

// Sessions persists one console session.
type Sessions struct {
	db   *sql.DB
	repo func(dbx.DBTX) Repository
	key  []byte
}

// NewSessions seals tokens with a key derived from secret.
func NewSessions(db *sql.DB, secret string) *Sessions {
	return &Sessions{
		db:   db,
		repo: func(tx dbx.DBTX) Repository { return NewSQLiteRepository(tx) },
		key:  cryptox.StoreKey(secret),
	}
}

// Save stores email and the sealed refresh token in one transaction.
func (s *Sessions) Save(ctx context.Context, email, refreshToken string) error {
	sealed, nonce, err := cryptox.Seal([]byte(refreshToken), s.key)
	if err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, keyEmail, []byte(email)); err != nil {
			return err
		}
		if err := r.Set(ctx, keyRefreshToken, sealed); err != nil {
			return err
		}
		return r.Set(ctx, keyTokenNonce, nonce)
	})
}

// Load returns the stored session; empty strings when there is none.
func (s *Sessions) Load(ctx context.Context) (email, refreshToken string, err error) {
	r := s.repo(s.db)

	rawEmail, err := r.Get(ctx, keyEmail)
	if err != nil {
		return "", "", err
	}
	sealed, err := r.Get(ctx, keyRefreshToken)
	if err != nil {
		return "", "", err
	}
	nonce, err := r.Get(ctx, keyTokenNonce)
	if err != nil {
		return "", "", err
	}
	if sealed == nil || nonce == nil {
		return string(rawEmail), "", nil
	}

	plain, err := cryptox.Open(sealed, nonce, s.key)
	if err != nil {
		return string(rawEmail), "", ErrCorrupted
	}
	return string(rawEmail), string(plain), nil
}

// Clear forgets the session.
func (s *Sessions) Clear(ctx context.Context) error {
	return s.repo(s.db).Clear(ctx)
}
