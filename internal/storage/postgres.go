package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres connects to a self-hosted sync box and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := RunPostgresMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return db, nil
}

// PostgresStore keeps the document as one row of the documents table.
// Update serializes writers from several devices with a transaction-scoped
// advisory lock on the document name.
type PostgresStore struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

func NewPostgresStore(db *sql.DB, name string) *PostgresStore {
	return &PostgresStore{db: db, name: name, now: time.Now}
}

func (s *PostgresStore) ReadWhole(ctx context.Context) ([]byte, error) {
	return s.read(ctx, s.db)
}

func (s *PostgresStore) WriteWhole(ctx context.Context, data []byte) error {
	return s.write(ctx, s.db, data)
}

func (s *PostgresStore) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, s.name); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		current, err := s.read(ctx, tx)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		return s.write(ctx, tx, next)
	})
}

func (s *PostgresStore) read(ctx context.Context, db dbx.DBTX) ([]byte, error) {
	var body []byte
	err := db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = $1`, s.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return body, nil
}

func (s *PostgresStore) write(ctx context.Context, db dbx.DBTX, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO documents (name, body, revision, updated_at)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (name)
		DO UPDATE SET
			body = EXCLUDED.body,
			revision = documents.revision + 1,
			updated_at = EXCLUDED.updated_at;
	`, s.name, data, s.now().UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}
