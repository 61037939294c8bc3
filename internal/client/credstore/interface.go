// Package credstore implements the local credential store: a single
// source of truth for session validity, readable by any gated feature.
// Both the credential gate and the login flow receive the Store as an
// injected capability instead of opening their own copy.
package credstore

import "context"

// Store is a key/value store for session credentials.
//
// Contract:
//   - Get returns ("", nil) for an absent key; absence is the normal
//     logged-out state, not an error.
//   - Set overwrites an existing value.
//   - Clear is idempotent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Clear(ctx context.Context, key string) error
}
