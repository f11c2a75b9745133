package models

import (
	"time"

	"github.com/google/uuid"
)

// OrgRole defines the role of a user within an organization.
type OrgRole string

const (
	// OrgRoleOwner has full control over the organization.
	OrgRoleOwner OrgRole = "owner"
	// OrgRoleAdmin can manage members and all resources.
	OrgRoleAdmin OrgRole = "admin"
	// OrgRoleAgent works tickets and writes articles.
	OrgRoleAgent OrgRole = "agent"
	// OrgRoleViewer has view-only access.
	OrgRoleViewer OrgRole = "viewer"
)

// ValidOrgRoles returns all valid organization roles.
func ValidOrgRoles() []OrgRole {
	return []OrgRole{OrgRoleOwner, OrgRoleAdmin, OrgRoleAgent, OrgRoleViewer}
}

// IsValidOrgRole checks if the given role is a valid organization role.
func IsValidOrgRole(role string) bool {
	for _, r := range ValidOrgRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}

// Membership associates a user with one organization, carrying a role.
type Membership struct {
	ID        uuid.UUID `json:"id"`
	OrgID     uuid.UUID `json:"org_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      OrgRole   `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipWithOrg embeds the organization's display name so callers
// resolving tenancy don't need a second query.
type MembershipWithOrg struct {
	Membership
	OrgName string `json:"org_name"`
}

// NewMembership creates a new Membership.
func NewMembership(orgID, userID uuid.UUID, role OrgRole) *Membership {
	now := time.Now()
	return &Membership{
		ID:        uuid.New(),
		OrgID:     orgID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwner returns true if the membership role is owner.
func (m *Membership) IsOwner() bool {
	return m.Role == OrgRoleOwner
}

// CanWrite returns true if the membership can create or modify resources.
func (m *Membership) CanWrite() bool {
	return m.Role == OrgRoleOwner || m.Role == OrgRoleAdmin || m.Role == OrgRoleAgent
}
