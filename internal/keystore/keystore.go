// Package keystore holds the symmetric journal key.
//
// A KeyStore is a small name -> bytes map with at-rest protection provided
// by whatever backs it (file permissions, the on-device database, or a
// passphrase wrapper). EnsureKey is the one-time initialization step that
// generates the key when it is missing.
package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
)

// JournalKeyName is the name the journal encryption key is stored under.
const JournalKeyName = "journal_key"

var (
	ErrWrongPassphrase    = errors.New("wrong passphrase")
	ErrPassphraseRequired = errors.New("key store is protected by a passphrase")
	ErrKeyConflict        = errors.New("plain and sealed copies of a key differ")
	ErrCorruptKey         = errors.New("stored key has unexpected size")
)

// KeyStore returns nil, nil from Get when name is absent. Delete of an
// absent name is not an error.
type KeyStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Set(ctx context.Context, name string, value []byte) error
	Delete(ctx context.Context, name string) error
}

// batchSetter is implemented by stores that can write several values
// atomically.
type batchSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

func setMany(ctx context.Context, ks KeyStore, values map[string][]byte) error {
	if b, ok := ks.(batchSetter); ok {
		return b.SetMany(ctx, values)
	}
	for name, v := range values {
		if err := ks.Set(ctx, name, v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureKey returns the 256-bit key stored under name, generating and
// persisting a fresh one first if none exists. Calling it again returns
// the same key.
func EnsureKey(ctx context.Context, ks KeyStore, name string) ([]byte, error) {
	key, err := ks.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get key %s: %w", name, err)
	}
	if key != nil {
		if len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrCorruptKey, name, len(key))
		}
		return key, nil
	}

	key = common.GenerateRandByteArray(cryptox.KeySize)
	if err := ks.Set(ctx, name, key); err != nil {
		return nil, fmt.Errorf("set key %s: %w", name, err)
	}
	return key, nil
}
