package tenancy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/helpdeskpro/helpdesk/internal/db"
	"github.com/helpdeskpro/helpdesk/internal/models"
)

// ErrEmptyName rejects a bootstrap with a blank organization name.
var ErrEmptyName = errors.New("organization name must not be empty")

// ErrAlreadyMember rejects a bootstrap for a user who already belongs
// to an organization.
var ErrAlreadyMember = errors.New("user already belongs to an organization")

// BootstrapStore is the atomic write the workflow needs. The store
// must guarantee that either both rows are created or neither is.
type BootstrapStore interface {
	CreateOrganizationWithOwner(ctx context.Context, org *models.Organization, owner *models.Membership) error
}

// Bootstrapper creates an organization and its first owning membership.
// Both call sites (registration and the settings page) share this one
// workflow.
type Bootstrapper struct {
	store  BootstrapStore
	logger zerolog.Logger
}

// NewBootstrapper creates a Bootstrapper.
func NewBootstrapper(store BootstrapStore, logger zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{
		store:  store,
		logger: logger.With().Str("component", "org_bootstrap").Logger(),
	}
}

// Bootstrap creates the organization named name owned by ownerID.
// On success exactly one organization and one owner membership exist;
// on failure neither does.
func (b *Bootstrapper) Bootstrap(ctx context.Context, name string, ownerID uuid.UUID) (*models.Organization, *models.Membership, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, ErrEmptyName
	}

	org := models.NewOrganization(name)
	owner := models.NewMembership(org.ID, ownerID, models.OrgRoleOwner)

	if err := b.store.CreateOrganizationWithOwner(ctx, org, owner); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, nil, ErrAlreadyMember
		}
		return nil, nil, fmt.Errorf("bootstrap organization: %w", err)
	}

	b.logger.Info().
		Str("org_id", org.ID.String()).
		Str("org_name", org.Name).
		Str("owner_id", ownerID.String()).
		Msg("organization bootstrapped")

	return org, owner, nil
}
