// Package cryptox seals and opens journal fields with AES-256-GCM and
// derives key-encryption keys from passphrases.
//
// A sealed blob is self-describing: nonce || ciphertext || tag. Callers never
// track nonces themselves.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moodkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of the symmetric key in bytes (AES-256).
const KeySize = 32

var (
	// ErrCannotDecrypt is returned by Open for malformed, truncated or
	// tampered blobs, and for blobs sealed under a different key.
	ErrCannotDecrypt = errors.New("cannot decrypt data")
	// ErrInvalidKey is returned by NewEngine for keys of the wrong size.
	ErrInvalidKey = errors.New("invalid key size")
)

// Engine seals and opens byte blobs under a single key. It is safe for
// concurrent use.
type Engine struct {
	aead cipher.AEAD
}

// NewEngine builds an Engine for a 256-bit key.
func NewEngine(key []byte) (*Engine, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Engine{aead: aead}, nil
}

// Seal encrypts plaintext with a fresh random nonce and returns
// nonce || ciphertext.
func (e *Engine) Seal(plaintext []byte) []byte {
	nonce := common.GenerateRandByteArray(e.aead.NonceSize())
	return e.aead.Seal(nonce, nonce, plaintext, nil)
}

// Open reverses Seal. Any failure is reported as ErrCannotDecrypt.
func (e *Engine) Open(blob []byte) ([]byte, error) {
	ns := e.aead.NonceSize()
	if len(blob) < ns+e.aead.Overhead() {
		return nil, ErrCannotDecrypt
	}
	plaintext, err := e.aead.Open(nil, blob[:ns], blob[ns:], nil)
	if err != nil {
		return nil, ErrCannotDecrypt
	}
	return plaintext, nil
}

func (e *Engine) SealString(s string) []byte {
	return e.Seal([]byte(s))
}

func (e *Engine) OpenString(blob []byte) (string, error) {
	b, err := e.Open(blob)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SealJSON serializes v to JSON and seals the result as a single unit.
func (e *Engine) SealJSON(v any) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return e.Seal(plaintext), nil
}

// OpenJSON opens blob and unmarshals the JSON inside into v. A blob that
// opens but does not deserialize is also reported as ErrCannotDecrypt.
func (e *Engine) OpenJSON(blob []byte, v any) error {
	plaintext, err := e.Open(blob)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCannotDecrypt, err)
	}
	return nil
}

func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// DeriveKey stretches a passphrase into a 256-bit key with Argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}
