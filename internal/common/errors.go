// Package common defines shared constants and sentinel errors used across
// the fortune client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors (missing, invalid or malformed identity token).
	ErrInvalidToken = errors.New("invalid token")

	// Remote login exchange answered with a non-success status.
	ErrLoginRejected = errors.New("login rejected")
)
