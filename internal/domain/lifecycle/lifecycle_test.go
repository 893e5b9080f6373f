package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "fresh proposal can be auto-approved", from: "", to: entity.StatusAutoApproved, want: true},
		{name: "fresh proposal can be auto-rejected", from: "", to: entity.StatusAutoRejected, want: true},
		{name: "fresh proposal can be escalated", from: "", to: entity.StatusInReview, want: true},
		{name: "submitted equals empty", from: entity.StatusSubmitted, to: entity.StatusInReview, want: true},
		{name: "manual review can approve", from: entity.StatusInReview, to: entity.StatusApproved, want: true},
		{name: "manual review can reject", from: entity.StatusInReview, to: entity.StatusRejected, want: true},
		{name: "approved can complete", from: entity.StatusApproved, to: entity.StatusCompleted, want: true},
		{name: "auto-approved can complete", from: entity.StatusAutoApproved, to: entity.StatusCompleted, want: true},
		{name: "same status is a no-op", from: entity.StatusAutoApproved, to: entity.StatusAutoApproved, want: true},
		{name: "decided cannot be flipped by the engine", from: entity.StatusAutoApproved, to: entity.StatusAutoRejected, want: false},
		{name: "manual decision cannot be undone", from: entity.StatusApproved, to: entity.StatusInReview, want: false},
		{name: "rejected is terminal", from: entity.StatusRejected, to: entity.StatusCompleted, want: false},
		{name: "completed is terminal", from: entity.StatusCompleted, to: entity.StatusInReview, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTransition(t *testing.T) {
	assert.NoError(t, Transition("", entity.StatusInReview))

	err := Transition(entity.StatusAutoRejected, entity.StatusAutoApproved)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")

	err = Transition(entity.StatusSubmitted, "ON_HOLD")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown oversight status")
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(entity.StatusCompleted))
	assert.True(t, IsTerminal(entity.StatusRejected))
	assert.True(t, IsTerminal(entity.StatusAutoRejected))
	assert.False(t, IsTerminal(entity.StatusInReview))
	assert.False(t, IsTerminal(""))
}
