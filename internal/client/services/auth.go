// Package services contains the client-side application services: the
// login flow, the credential gate, and the gated booking operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkolesov/launchbook/internal/client/client"
	"github.com/pkolesov/launchbook/internal/client/credstore"
	"github.com/pkolesov/launchbook/internal/common"
	"github.com/pkolesov/launchbook/internal/logging"
)

// Validation errors are user-facing; the two cases carry distinct
// messages so the prompt can explain what to fix.
var (
	ErrIdentifierRequired = errors.New("email is required")
	ErrIdentifierFormat   = errors.New("email must contain the @ character")

	// ErrSubmitInFlight is returned when a second submission is attempted
	// while one request is outstanding.
	ErrSubmitInFlight = errors.New("a login attempt is already in flight")

	// ErrFlowClosed is returned when submitting to a flow that already
	// completed or was cancelled.
	ErrFlowClosed = errors.New("login flow is closed")
)

// ValidateIdentifier runs the local checks the flow performs before any
// network call is made.
func ValidateIdentifier(email string) error {
	if email == "" {
		return ErrIdentifierRequired
	}
	if !strings.Contains(email, "@") {
		return ErrIdentifierFormat
	}
	return nil
}

// Outcome classifies how one authentication attempt completed.
type Outcome int

const (
	// OutcomeSuccess: the authenticator issued a token and it was persisted.
	OutcomeSuccess Outcome = iota
	// OutcomeNoToken: the response succeeded but carried no token. The
	// store is left untouched; what to tell the user is the caller's
	// policy decision.
	OutcomeNoToken
	// OutcomeRejected: structured errors came back alongside the response.
	OutcomeRejected
	// OutcomeTransport: the request never completed.
	OutcomeTransport
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoToken:
		return "no token"
	case OutcomeRejected:
		return "rejected"
	case OutcomeTransport:
		return "transport failure"
	default:
		return "unknown"
	}
}

// AuthResult is the terminal state of one authentication attempt.
// Messages and Err are diagnostic; only OutcomeSuccess changes the store.
type AuthResult struct {
	Outcome  Outcome
	Token    string
	Messages []string
	Err      error
}

// LoginFlow collects an identifier, exchanges it for a session token and
// persists the token under the well-known key. One flow instance serves
// one login screen: it completes at most once, and the busy guard stands
// in for the disabled submit control, so at most one request is in
// flight at a time.
type LoginFlow struct {
	client client.Client
	store  credstore.Store
	logger logging.Logger

	busy atomic.Bool

	mu         sync.Mutex
	cancel     context.CancelFunc
	closed     bool
	onComplete func()
}

// NewLoginFlow builds a flow. onComplete is invoked exactly once, after
// a token has been persisted; it is the dismissal signal. A nil logger
// or onComplete is allowed.
func NewLoginFlow(c client.Client, store credstore.Store, logger logging.Logger, onComplete func()) *LoginFlow {
	if logger == nil {
		logger = logging.NewSlogLogger(discardSlog())
	}
	return &LoginFlow{client: c, store: store, logger: logger, onComplete: onComplete}
}

// Busy reports whether a submission is in flight. It is the programmatic
// equivalent of the submit control's disabled state.
func (f *LoginFlow) Busy() bool {
	return f.busy.Load()
}

// Submit runs one authentication attempt: local validation, a single
// login request, and persistence of a returned token.
//
// Validation failures return an error and never touch the network.
// Everything past validation is reported through AuthResult; only a
// persistence failure surfaces as a non-nil error alongside it. The busy
// guard is released on every path.
func (f *LoginFlow) Submit(ctx context.Context, email string) (*AuthResult, error) {
	if err := ValidateIdentifier(email); err != nil {
		return nil, err
	}

	if !f.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer f.busy.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFlowClosed
	}
	f.cancel = cancel
	f.mu.Unlock()

	return f.exchange(ctx, email)
}

// exchange performs the remote call and the completion branch. It is
// split from Submit so the post-validation contract can be exercised
// with identifiers the validator would refuse.
func (f *LoginFlow) exchange(ctx context.Context, email string) (*AuthResult, error) {
	payload, err := f.client.Login(ctx, email)
	if err != nil {
		// Diagnostic only: the flow stays open for a manual retry.
		f.logger.Error(ctx, "login request failed", "error", err)
		return &AuthResult{Outcome: OutcomeTransport, Err: err}, nil
	}

	if len(payload.Messages) > 0 {
		f.logger.Warn(ctx, "login response carried errors", "messages", strings.Join(payload.Messages, "; "))
	}

	if payload.Token == "" {
		if len(payload.Messages) > 0 {
			return &AuthResult{Outcome: OutcomeRejected, Messages: payload.Messages}, nil
		}
		return &AuthResult{Outcome: OutcomeNoToken}, nil
	}

	if err := f.store.Set(ctx, common.CredentialKey, payload.Token); err != nil {
		return nil, fmt.Errorf("persist credential: %w", err)
	}

	f.complete()
	return &AuthResult{Outcome: OutcomeSuccess, Token: payload.Token, Messages: payload.Messages}, nil
}

// complete fires the dismissal signal at most once, and never after
// Cancel.
func (f *LoginFlow) complete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.onComplete != nil {
		f.onComplete()
	}
}

// Cancel tears the flow down from any pre-completion state. An in-flight
// request is cancelled rather than left running; its result is
// discarded and the completion signal never fires afterwards.
func (f *LoginFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
}
