package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresStore(db, DocumentName), mock, db
}

var (
	pgSelect = regexp.QuoteMeta(`SELECT body FROM documents WHERE name = $1`)
	pgUpsert = `INSERT INTO documents .* ON CONFLICT \(name\) DO UPDATE SET .*revision = documents\.revision \+ 1`
	pgLock   = regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtext($1))`)
)

func TestPostgresStore_ReadWhole(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(pgSelect).WithArgs(DocumentName).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte("doc")))

	got, err := s.ReadWhole(context.Background())
	require.NoError(t, err)
	require.Equal(t, "doc", string(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReadWhole_NotFound(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(pgSelect).WithArgs(DocumentName).WillReturnError(sql.ErrNoRows)

	_, err := s.ReadWhole(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReadWhole_DBError(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(pgSelect).WithArgs(DocumentName).WillReturnError(errors.New("db is down"))

	_, err := s.ReadWhole(context.Background())
	require.Error(t, err)
	require.Regexp(t, `db error: .*db is down`, err.Error())
}

func TestPostgresStore_WriteWhole(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectExec(pgUpsert).
		WithArgs(DocumentName, []byte("doc"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.WriteWhole(context.Background(), []byte("doc")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WriteWhole_Errors(t *testing.T) {
	t.Run("exec", func(t *testing.T) {
		s, mock, db := newPostgresWithMock(t)
		defer db.Close()

		mock.ExpectExec(pgUpsert).WillReturnError(errors.New("db is down"))
		err := s.WriteWhole(context.Background(), []byte("doc"))
		require.Regexp(t, `db error: .*db is down`, err.Error())
	})

	t.Run("rows affected", func(t *testing.T) {
		s, mock, db := newPostgresWithMock(t)
		defer db.Close()

		mock.ExpectExec(pgUpsert).WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))
		err := s.WriteWhole(context.Background(), []byte("doc"))
		require.Regexp(t, `rows affected error: .*rows-err`, err.Error())
	})

	t.Run("unexpected count", func(t *testing.T) {
		s, mock, db := newPostgresWithMock(t)
		defer db.Close()

		mock.ExpectExec(pgUpsert).WillReturnResult(sqlmock.NewResult(0, 0))
		err := s.WriteWhole(context.Background(), []byte("doc"))
		require.EqualError(t, err, "unexpected rows affected: 0")
	})
}

func TestPostgresStore_Update_CommitsUnderLock(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs(DocumentName).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgSelect).WithArgs(DocumentName).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte("a")))
	mock.ExpectExec(pgUpsert).
		WithArgs(DocumentName, []byte("ab"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), func(current []byte) ([]byte, error) {
		return append(current, 'b'), nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update_MissingDocument(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs(DocumentName).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgSelect).WithArgs(DocumentName).WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(pgUpsert).
		WithArgs(DocumentName, []byte("new"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), func(current []byte) ([]byte, error) {
		require.Nil(t, current)
		return []byte("new"), nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update_RollsBackOnFnError(t *testing.T) {
	s, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(pgLock).WithArgs(DocumentName).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(pgSelect).WithArgs(DocumentName).
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte("a")))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.Update(context.Background(), func(current []byte) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
