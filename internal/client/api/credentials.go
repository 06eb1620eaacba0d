package api

import "context"

// Credentials is the token storage the pipeline reads and rotates.
// Absent tokens are reported as an empty string with a nil error.
type Credentials interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	// SaveTokens writes both tokens together
	SaveTokens(ctx context.Context, access, refresh string) error
	// Clear removes both tokens and the persisted session
	Clear(ctx context.Context) error
}
