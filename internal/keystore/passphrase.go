package keystore

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"github.com/dmitrijs2005/moodkeeper/internal/cryptox"
)

const (
	saltName     = "kek_salt"
	verifierName = "kek_verifier"
	sealedPrefix = "sealed_"
	saltSize     = 32
)

// PassphraseStore wraps another KeyStore and seals every value with a
// key-encryption key derived from a passphrase. The salt and a verifier of
// the derived key are kept in the inner store in the clear.
type PassphraseStore struct {
	inner  KeyStore
	engine *cryptox.Engine
}

// NewPassphraseStore unlocks inner with passphrase. The first call on an
// empty inner store enrolls the passphrase; later calls with a different
// passphrase fail with ErrWrongPassphrase.
func NewPassphraseStore(ctx context.Context, inner KeyStore, passphrase []byte) (*PassphraseStore, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("empty passphrase")
	}

	salt, err := inner.Get(ctx, saltName)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	var kek []byte
	if salt == nil {
		salt = common.GenerateRandByteArray(saltSize)
		kek = cryptox.DeriveKey(passphrase, salt)

		if err := setMany(ctx, inner, map[string][]byte{
			saltName:     salt,
			verifierName: cryptox.MakeVerifier(kek),
		}); err != nil {
			return nil, fmt.Errorf("enroll passphrase: %w", err)
		}
	} else {
		saved, err := inner.Get(ctx, verifierName)
		if err != nil {
			return nil, fmt.Errorf("get verifier error: %w", err)
		}
		kek = cryptox.DeriveKey(passphrase, salt)
		if subtle.ConstantTimeCompare(saved, cryptox.MakeVerifier(kek)) == 0 {
			return nil, ErrWrongPassphrase
		}
	}
	defer common.WipeByteArray(kek)

	engine, err := cryptox.NewEngine(kek)
	if err != nil {
		return nil, err
	}
	return &PassphraseStore{inner: inner, engine: engine}, nil
}

func (s *PassphraseStore) Get(ctx context.Context, name string) ([]byte, error) {
	blob, err := s.inner.Get(ctx, sealedPrefix+name)
	if err != nil || blob == nil {
		return nil, err
	}
	v, err := s.engine.Open(blob)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return v, nil
}

func (s *PassphraseStore) Set(ctx context.Context, name string, value []byte) error {
	return s.inner.Set(ctx, sealedPrefix+name, s.engine.Seal(value))
}

func (s *PassphraseStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, sealedPrefix+name)
}

// Protected reports whether a passphrase has been enrolled in ks.
func Protected(ctx context.Context, ks KeyStore) (bool, error) {
	salt, err := ks.Get(ctx, saltName)
	if err != nil {
		return false, fmt.Errorf("get salt error: %w", err)
	}
	return salt != nil, nil
}

// AdoptPlain moves values the inner store holds in the clear under names
// into their sealed slots and removes the plain copies. A plain copy that
// disagrees with an existing sealed value is left in place and reported
// as ErrKeyConflict.
func (s *PassphraseStore) AdoptPlain(ctx context.Context, names ...string) error {
	for _, name := range names {
		plain, err := s.inner.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("get plain %s: %w", name, err)
		}
		if plain == nil {
			continue
		}

		sealed, err := s.Get(ctx, name)
		if err != nil {
			return err
		}
		switch {
		case sealed == nil:
			if err := s.Set(ctx, name, plain); err != nil {
				return fmt.Errorf("seal %s: %w", name, err)
			}
		case !bytes.Equal(sealed, plain):
			return fmt.Errorf("%w: %s", ErrKeyConflict, name)
		}
		common.WipeByteArray(sealed)
		common.WipeByteArray(plain)

		if err := s.inner.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete plain %s: %w", name, err)
		}
	}
	return nil
}
