package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS documents (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// PgBackend keeps the document as a single row of the documents table.
// The body is stored as text so the bytes round-trip unchanged.
type PgBackend struct {
	db   *sql.DB
	name string
}

func NewPgBackend(ctx context.Context, db *sql.DB, name string) (*PgBackend, error) {
	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		return nil, fmt.Errorf("pgBackend: creating documents table: %w", err)
	}
	return &PgBackend{db: db, name: name}, nil
}

func (b *PgBackend) Read(ctx context.Context) ([]byte, error) {
	var body string
	err := b.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = $1`, b.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("pgBackend.Read: %w", err)
	}
	return []byte(body), nil
}

func (b *PgBackend) Write(ctx context.Context, data []byte) error {
	query := `INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
	          ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = CURRENT_TIMESTAMP`
	if _, err := b.db.ExecContext(ctx, query, b.name, string(data)); err != nil {
		return fmt.Errorf("pgBackend.Write: %w", err)
	}
	return nil
}

func (b *PgBackend) Quarantine(ctx context.Context, data []byte) (string, error) {
	name := quarantineName(b.name, time.Now())
	query := `INSERT INTO documents (name, body) VALUES ($1, $2)
	          ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = CURRENT_TIMESTAMP`
	if _, err := b.db.ExecContext(ctx, query, name, string(data)); err != nil {
		return "", fmt.Errorf("pgBackend.Quarantine: %w", err)
	}
	return name, nil
}

// Close is a no-op: the pool belongs to the database package.
func (b *PgBackend) Close() error { return nil }
