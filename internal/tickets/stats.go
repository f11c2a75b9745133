// Package tickets provides pure aggregation over ticket data for the
// dashboard.
package tickets

import "github.com/helpdeskpro/helpdesk/internal/models"

// StatusPriority is the projection of a ticket the rollup needs.
type StatusPriority struct {
	Status   models.TicketStatus
	Priority models.TicketPriority
}

// Stats is the dashboard rollup. Open, InProgress and Resolved
// partition tickets by status; Urgent is an independent overlapping
// count by priority.
type Stats struct {
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Resolved   int `json:"resolved"`
	Urgent     int `json:"urgent"`
}

// ComputeStats tallies the rollup in a single pass. Empty input yields
// all-zero counts.
func ComputeStats(rows []StatusPriority) Stats {
	var s Stats
	for _, r := range rows {
		switch r.Status {
		case models.TicketStatusOpen:
			s.Open++
		case models.TicketStatusInProgress:
			s.InProgress++
		case models.TicketStatusResolved:
			s.Resolved++
		}
		if r.Priority == models.TicketPriorityUrgent {
			s.Urgent++
		}
	}
	return s
}
