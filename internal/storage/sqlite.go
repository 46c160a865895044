package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moodkeeper/internal/dbx"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) the on-device database and applies the
// embedded migrations. The pool is limited to one connection: SQLite
// serializes writers anyway, and ":memory:" databases are per connection.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := RunSQLiteMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

// SQLiteStore keeps the document as one row of the documents table.
type SQLiteStore struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

func NewSQLiteStore(db *sql.DB, name string) *SQLiteStore {
	return &SQLiteStore{db: db, name: name, now: time.Now}
}

func (s *SQLiteStore) ReadWhole(ctx context.Context) ([]byte, error) {
	return s.read(ctx, s.db)
}

func (s *SQLiteStore) WriteWhole(ctx context.Context, data []byte) error {
	return s.write(ctx, s.db, data)
}

// Update runs the cycle inside one transaction.
func (s *SQLiteStore) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
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

func (s *SQLiteStore) read(ctx context.Context, db dbx.DBTX) ([]byte, error) {
	var body []byte
	err := db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, s.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document[%s]: %w", s.name, err)
	}
	return body, nil
}

func (s *SQLiteStore) write(ctx context.Context, db dbx.DBTX, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO documents (name, body, revision, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			revision = documents.revision + 1,
			updated_at = excluded.updated_at
	`, s.name, data, s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set document[%s]: %w", s.name, err)
	}
	return nil
}
