package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/helpdeskpro/helpdesk/internal/models"
	"github.com/helpdeskpro/helpdesk/internal/tickets"
)

// ListTicketsByOrgID returns all tickets of an organization, newest
// first, with the requester's display name embedded.
func (db *DB) ListTicketsByOrgID(ctx context.Context, orgID uuid.UUID) ([]*models.TicketWithRequester, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT t.id, t.org_id, t.subject, t.status, t.priority,
		       t.created_by, t.created_at, t.updated_at,
		       COALESCE(NULLIF(u.full_name, ''), u.email, '') AS requester_name
		FROM tickets t
		LEFT JOIN users u ON u.id = t.created_by
		WHERE t.org_id = $1
		ORDER BY t.created_at DESC
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var result []*models.TicketWithRequester
	for rows.Next() {
		var t models.TicketWithRequester
		var status, priority string
		if err := rows.Scan(
			&t.ID, &t.OrgID, &t.Subject, &status, &priority,
			&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt, &t.RequesterName,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		t.Status = models.TicketStatus(status)
		t.Priority = models.TicketPriority(priority)
		result = append(result, &t)
	}
	return result, rows.Err()
}

// CreateTicket inserts a ticket row.
func (db *DB) CreateTicket(ctx context.Context, t *models.Ticket) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO tickets (id, org_id, subject, status, priority, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.OrgID, t.Subject, string(t.Status), string(t.Priority),
		t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// GetTicketRollup returns the status/priority pairs of an org's tickets
// for dashboard aggregation. Only the two columns the rollup needs are
// fetched.
func (db *DB) GetTicketRollup(ctx context.Context, orgID uuid.UUID) ([]tickets.StatusPriority, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT status, priority
		FROM tickets
		WHERE org_id = $1
	`, orgID)
	if err != nil {
		return nil, fmt.Errorf("ticket rollup: %w", err)
	}
	defer rows.Close()

	var result []tickets.StatusPriority
	for rows.Next() {
		var sp tickets.StatusPriority
		var status, priority string
		if err := rows.Scan(&status, &priority); err != nil {
			return nil, fmt.Errorf("scan rollup row: %w", err)
		}
		sp.Status = models.TicketStatus(status)
		sp.Priority = models.TicketPriority(priority)
		result = append(result, sp)
	}
	return result, rows.Err()
}
