// Package credentials is the durable store for the session credential pair.
// It is pure storage: no network calls, no token validation.
package credentials

import "context"

// Pair holds the opaque bearer tokens issued by the server. Both tokens are
// replaced wholesale on login and refresh.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Repository persists the credential pair across runs.
//
// Invariant: either both tokens are present or neither is. Get returns
// (nil, nil) when the pair is absent or partial.
type Repository interface {
	Get(ctx context.Context) (*Pair, error)
	Set(ctx context.Context, pair Pair) error
	Clear(ctx context.Context) error
}
