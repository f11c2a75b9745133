// Package tenancy resolves which view a request is entitled to see and
// owns the organization bootstrap workflow. Every gated entry point
// goes through Decide; none re-derives the branching on its own.
package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/models"
)

// State is the tenancy state of a request.
type State string

const (
	// StateUnauthenticated means no session is present.
	StateUnauthenticated State = "unauthenticated"
	// StateNoOrg means a session exists but the user has no membership.
	StateNoOrg State = "no_org"
	// StateWithOrg means the user belongs to an organization.
	StateWithOrg State = "with_org"
)

// Decision is what the caller should do with the request.
type Decision string

const (
	// DecisionLogin denies access; the client must authenticate.
	DecisionLogin Decision = "login"
	// DecisionSetup lets the client in far enough to create an
	// organization, but not into tenant-scoped content.
	DecisionSetup Decision = "setup"
	// DecisionAllow grants access scoped to the membership's org.
	DecisionAllow Decision = "allow"
	// DecisionRetry denies access because the membership lookup
	// failed. The condition is transient; the client may retry.
	DecisionRetry Decision = "retry"
)

// Resolution pairs the resolved state with its gate decision and, when
// allowed, the membership that scopes the request.
type Resolution struct {
	State      State
	Decision   Decision
	Membership *models.MembershipWithOrg
}

// Decide maps (identity, membership, lookup outcome) to a Resolution.
// A failed lookup is never treated as "no membership": the gate fails
// closed and asks the client to retry.
func Decide(authenticated bool, membership *models.MembershipWithOrg, lookupFailed bool) Resolution {
	if !authenticated {
		return Resolution{State: StateUnauthenticated, Decision: DecisionLogin}
	}
	if lookupFailed {
		return Resolution{State: StateNoOrg, Decision: DecisionRetry}
	}
	if membership == nil {
		return Resolution{State: StateNoOrg, Decision: DecisionSetup}
	}
	return Resolution{State: StateWithOrg, Decision: DecisionAllow, Membership: membership}
}

// MembershipStore is the lookup the resolver needs.
type MembershipStore interface {
	GetMembershipForUser(ctx context.Context, userID uuid.UUID) (*models.MembershipWithOrg, error)
}

// Resolver evaluates the gate for authenticated users against the
// membership store. It holds no state; tenancy is recomputed on every
// request.
type Resolver struct {
	store  MembershipStore
	logger zerolog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(store MembershipStore, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		logger: logger.With().Str("component", "tenancy").Logger(),
	}
}

// Resolve looks up the user's membership and gates on the result.
// Confirmed absence yields DecisionSetup; any other lookup error yields
// DecisionRetry.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) Resolution {
	membership, err := r.store.GetMembershipForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return Decide(true, nil, false)
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("membership lookup failed")
		return Decide(true, nil, true)
	}
	return Decide(true, membership, false)
}
