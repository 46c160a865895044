// Package common defines shared constants and sentinel errors used across
// moodkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Input validation.
	ErrEmptyText = errors.New("entry text is empty")

	// Pairing token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
