package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus is the workflow state of a ticket.
type TicketStatus string

const (
	// TicketStatusOpen is a newly filed, unworked ticket.
	TicketStatusOpen TicketStatus = "open"
	// TicketStatusInProgress is a ticket an agent is working.
	TicketStatusInProgress TicketStatus = "in_progress"
	// TicketStatusResolved is a ticket with a delivered answer.
	TicketStatusResolved TicketStatus = "resolved"
	// TicketStatusClosed is a resolved ticket the requester confirmed.
	TicketStatusClosed TicketStatus = "closed"
)

// ValidTicketStatuses returns all valid ticket statuses.
func ValidTicketStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}
}

// IsValidTicketStatus checks if the given status is valid.
func IsValidTicketStatus(status string) bool {
	for _, s := range ValidTicketStatuses() {
		if string(s) == status {
			return true
		}
	}
	return false
}

// TicketPriority is the urgency of a ticket.
type TicketPriority string

const (
	// TicketPriorityLow can wait.
	TicketPriorityLow TicketPriority = "low"
	// TicketPriorityNormal is the default.
	TicketPriorityNormal TicketPriority = "normal"
	// TicketPriorityHigh should be picked up soon.
	TicketPriorityHigh TicketPriority = "high"
	// TicketPriorityUrgent needs immediate attention.
	TicketPriorityUrgent TicketPriority = "urgent"
)

// ValidTicketPriorities returns all valid ticket priorities.
func ValidTicketPriorities() []TicketPriority {
	return []TicketPriority{TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh, TicketPriorityUrgent}
}

// IsValidTicketPriority checks if the given priority is valid.
func IsValidTicketPriority(priority string) bool {
	for _, p := range ValidTicketPriorities() {
		if string(p) == priority {
			return true
		}
	}
	return false
}

// Ticket represents a support request within an organization.
type Ticket struct {
	ID        uuid.UUID      `json:"id"`
	OrgID     uuid.UUID      `json:"org_id"`
	Subject   string         `json:"subject"`
	Status    TicketStatus   `json:"status"`
	Priority  TicketPriority `json:"priority"`
	CreatedBy *uuid.UUID     `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TicketWithRequester embeds the requester's display name for list views.
type TicketWithRequester struct {
	Ticket
	RequesterName string `json:"requester_name,omitempty"`
}

// NewTicket creates a new open Ticket.
func NewTicket(orgID uuid.UUID, subject string, priority TicketPriority, createdBy uuid.UUID) *Ticket {
	now := time.Now()
	return &Ticket{
		ID:        uuid.New(),
		OrgID:     orgID,
		Subject:   subject,
		Status:    TicketStatusOpen,
		Priority:  priority,
		CreatedBy: &createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
