package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/factorg/internal/audit/migrations"
	"github.com/dmitrijs2005/factorg/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to dsn through pgx and applies the audit migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := dbx.Migrate(ctx, db, migrations.Migrations, "pgx"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (r *PostgresRepository) Record(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (actor, action, target, detail, request_id)
		VALUES ($1, $2, $3, $4, $5)
	`, e.Actor, e.Action, e.Target, e.Detail, e.RequestID)
	if err != nil {
		return fmt.Errorf("failed to record audit entry %s: %w", e.Action, err)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, actor, action, target, detail, request_id
		FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Actor, &e.Action, &e.Target, &e.Detail, &e.RequestID); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}
	return entries, nil
}
