package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdeskpro/helpdesk/internal/models"
)

// GetMembershipForUser returns the user's membership joined with the
// organization's display name, or ErrNotFound if the user belongs to no
// organization. The schema enforces at most one membership per user;
// the ORDER BY keeps the result deterministic even against a legacy
// duplicate row.
func (db *DB) GetMembershipForUser(ctx context.Context, userID uuid.UUID) (*models.MembershipWithOrg, error) {
	var m models.MembershipWithOrg
	var roleStr string
	err := db.Pool.QueryRow(ctx, `
		SELECT m.id, m.org_id, m.user_id, m.role, m.created_at, m.updated_at, o.name
		FROM organization_members m
		JOIN organizations o ON o.id = m.org_id
		WHERE m.user_id = $1
		ORDER BY m.created_at
		LIMIT 1
	`, userID).Scan(
		&m.ID, &m.OrgID, &m.UserID, &roleStr, &m.CreatedAt, &m.UpdatedAt, &m.OrgName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get membership for user: %w", err)
	}
	m.Role = models.OrgRole(roleStr)
	return &m, nil
}

// CreateMembership inserts a membership row. Returns ErrDuplicate if
// the user already belongs to an organization.
func (db *DB) CreateMembership(ctx context.Context, m *models.Membership) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO organization_members (id, org_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.OrgID, m.UserID, string(m.Role), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if mapped := mapError(err); errors.Is(mapped, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// CreateOrganizationWithOwner inserts an organization and its owning
// membership in one transaction. A failure on either insert rolls both
// back, so an organization can never exist without an owner.
func (db *DB) CreateOrganizationWithOwner(ctx context.Context, org *models.Organization, owner *models.Membership) error {
	err := db.ExecTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO organizations (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4)
		`, org.ID, org.Name, org.CreatedAt, org.UpdatedAt); err != nil {
			return fmt.Errorf("insert organization: %w", mapError(err))
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO organization_members (id, org_id, user_id, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, owner.ID, owner.OrgID, owner.UserID, string(owner.Role),
			owner.CreatedAt, owner.UpdatedAt); err != nil {
			return fmt.Errorf("insert owner membership: %w", mapError(err))
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	db.logger.Info().
		Str("org_id", org.ID.String()).
		Str("owner_id", owner.UserID.String()).
		Msg("organization created")
	return nil
}

// ListMembersByOrgID returns all memberships of an organization with
// user display details, owners first.
func (db *DB) ListMembersByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, org_id, user_id, role, created_at, updated_at
		FROM organization_members
		WHERE org_id = $1
		ORDER BY created_at
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Membership
	for rows.Next() {
		var m models.Membership
		var roleStr string
		if err := rows.Scan(&m.ID, &m.OrgID, &m.UserID, &roleStr, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		m.Role = models.OrgRole(roleStr)
		members = append(members, &m)
	}
	return members, rows.Err()
}
