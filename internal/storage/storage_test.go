package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]DocumentStore {
	t.Helper()

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]DocumentStore{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(filepath.Join(t.TempDir(), "journal.json")),
		"sqlite": NewSQLiteStore(db, DocumentName),
	}
}

func TestDocumentStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, ds := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := ds.ReadWhole(ctx)
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, ds.WriteWhole(ctx, []byte(`{"version":1}`)))
			got, err := ds.ReadWhole(ctx)
			require.NoError(t, err)
			require.Equal(t, `{"version":1}`, string(got))

			require.NoError(t, ds.WriteWhole(ctx, []byte(`{"version":1,"entries":[]}`)))
			got, err = ds.ReadWhole(ctx)
			require.NoError(t, err)
			require.Equal(t, `{"version":1,"entries":[]}`, string(got))
		})
	}
}

func TestUpdate_AllBackends(t *testing.T) {
	ctx := context.Background()

	for name, ds := range backends(t) {
		t.Run(name, func(t *testing.T) {
			err := Update(ctx, ds, func(current []byte) ([]byte, error) {
				require.Nil(t, current)
				return []byte("a"), nil
			})
			require.NoError(t, err)

			err = Update(ctx, ds, func(current []byte) ([]byte, error) {
				return append(current, 'b'), nil
			})
			require.NoError(t, err)

			got, err := ds.ReadWhole(ctx)
			require.NoError(t, err)
			require.Equal(t, "ab", string(got))
		})
	}
}

func TestUpdate_FnErrorLeavesDocumentUntouched(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	for name, ds := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, ds.WriteWhole(ctx, []byte("keep")))

			err := Update(ctx, ds, func(current []byte) ([]byte, error) {
				return nil, boom
			})
			require.ErrorIs(t, err, boom)

			got, err := ds.ReadWhole(ctx)
			require.NoError(t, err)
			require.Equal(t, "keep", string(got))
		})
	}
}

type failingStore struct{ err error }

func (f failingStore) ReadWhole(ctx context.Context) ([]byte, error) { return nil, f.err }
func (f failingStore) WriteWhole(ctx context.Context, data []byte) error {
	return errors.New("must not be called")
}

func TestUpdate_ReadErrorIsReturned(t *testing.T) {
	readErr := errors.New("disk on fire")
	called := false

	err := Update(context.Background(), failingStore{err: readErr}, func(current []byte) ([]byte, error) {
		called = true
		return current, nil
	})
	require.ErrorIs(t, err, readErr)
	require.False(t, called)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	in := []byte("abc")
	require.NoError(t, s.WriteWhole(ctx, in))
	in[0] = 'x'

	got, err := s.ReadWhole(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := s.ReadWhole(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", string(again))
}

func TestFileStore_ReadErrorOtherThanMissing(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir) // a directory cannot be read as a file

	_, err := s.ReadWhole(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, dir, s.Path())
}
