package auth

import "errors"

var (
	// ErrNoSession means no session is persisted
	ErrNoSession = errors.New("no session stored")
	// ErrSessionCorrupt means the persisted session cannot be read back
	ErrSessionCorrupt = errors.New("stored session is corrupt")
	// ErrTokensMissing means the token endpoint answered without both tokens
	ErrTokensMissing = errors.New("token response carries no access/refresh pair")
)
