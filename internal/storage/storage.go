// Package storage persists the journal collection as one opaque document.
//
// Every backend implements DocumentStore. Backends that can run a
// read-modify-write cycle atomically on their own (the SQL ones) also
// implement Updater, which Update prefers.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by ReadWhole when the document has never been
// written.
var ErrNotFound = errors.New("document not found")

// DocumentName is the name of the journal collection document in backends
// that can hold more than one document.
const DocumentName = "journal"

type DocumentStore interface {
	ReadWhole(ctx context.Context) ([]byte, error)
	WriteWhole(ctx context.Context, data []byte) error
}

// Updater applies fn to the current document and stores the result as one
// atomic step. current is nil when the document does not exist yet.
type Updater interface {
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}

// Update runs a read-modify-write cycle against ds. It delegates to ds when
// ds implements Updater; otherwise it reads, applies fn and writes back, and
// the caller is responsible for serializing concurrent cycles.
func Update(ctx context.Context, ds DocumentStore, fn func(current []byte) ([]byte, error)) error {
	if u, ok := ds.(Updater); ok {
		return u.Update(ctx, fn)
	}

	current, err := ds.ReadWhole(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	return ds.WriteWhole(ctx, next)
}
