package services

import (
	"context"

	"github.com/pkolesov/launchbook/internal/client/credstore"
	"github.com/pkolesov/launchbook/internal/common"
)

// Gate decides whether a protected action may proceed, based solely on
// the presence of a stored credential. It performs no network call and
// no validation; a persisted credential is treated as valid until the
// server says otherwise.
type Gate struct {
	store credstore.Store
}

func NewGate(store credstore.Store) *Gate {
	return &Gate{store: store}
}

// IsAuthenticated reports whether a non-empty credential is stored under
// the well-known key. A store read failure reads as "not logged in".
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	token, err := g.store.Get(ctx, common.CredentialKey)
	return err == nil && token != ""
}

// Token implements the transport's token source, so outbound protected
// requests carry whatever the store currently holds.
func (g *Gate) Token(ctx context.Context) (string, error) {
	return g.store.Get(ctx, common.CredentialKey)
}

// Clear removes the stored credential (logout).
func (g *Gate) Clear(ctx context.Context) error {
	return g.store.Clear(ctx, common.CredentialKey)
}
