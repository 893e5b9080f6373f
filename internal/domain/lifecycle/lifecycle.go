// Package lifecycle defines the oversight status lifecycle of a proposal
// and validates transitions between statuses. A decided proposal can only
// move forward through manual review or completion; the engine can never
// flip an already-decided outcome.
package lifecycle

import (
	"fmt"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

var validStatuses = map[string]bool{
	entity.StatusSubmitted:    true,
	entity.StatusAutoApproved: true,
	entity.StatusAutoRejected: true,
	entity.StatusInReview:     true,
	entity.StatusApproved:     true,
	entity.StatusRejected:     true,
	entity.StatusCompleted:    true,
}

var terminalStatuses = map[string]bool{
	entity.StatusAutoRejected: true,
	entity.StatusRejected:     true,
	entity.StatusCompleted:    true,
}

// transitions holds the allowed forward moves. An empty current status is
// treated as SUBMITTED: the portal creates proposals before the engine
// ever sees them.
var transitions = map[string][]string{
	entity.StatusSubmitted: {
		entity.StatusAutoApproved,
		entity.StatusAutoRejected,
		entity.StatusInReview,
	},
	entity.StatusInReview: {
		entity.StatusApproved,
		entity.StatusRejected,
	},
	entity.StatusAutoApproved: {
		entity.StatusCompleted,
	},
	entity.StatusApproved: {
		entity.StatusCompleted,
	},
}

// IsValid returns true if the status is a recognized oversight status
func IsValid(status string) bool {
	return status == "" || validStatuses[status]
}

// IsTerminal returns true if no further transitions are allowed from the status
func IsTerminal(status string) bool {
	return terminalStatuses[status]
}

// CanTransition reports whether a proposal may move from one oversight
// status to another. A same-status move is always allowed; it is how
// idempotent re-application expresses itself.
func CanTransition(from, to string) bool {
	if from == "" {
		from = entity.StatusSubmitted
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates a status move, returning a descriptive error when
// the move is not allowed.
func Transition(from, to string) error {
	if !IsValid(to) {
		return fmt.Errorf("unknown oversight status %q", to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("invalid status transition %s -> %s", displayStatus(from), to)
	}
	return nil
}

func displayStatus(status string) string {
	if status == "" {
		return entity.StatusSubmitted
	}
	return status
}
