package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

func TestBuildDigestPrompt(t *testing.T) {
	w := NewDigestWriter("test-key", "gpt-4o-mini", 0.3, zap.NewNop())

	risk := 2
	class := entity.ClassificationInternal
	ruleID := int64(1)
	p := &entity.Proposal{
		ID:                 42,
		Title:              "Code review assistant",
		Team:               "platform",
		Cost:               400,
		RiskScore:          &risk,
		DataClassification: &class,
		EscalationTriggers: []string{entity.TriggerCustomerData},
	}
	tier := entity.GovernanceTier{Name: "Department Rollout", ApprovalPathway: entity.PathwayFullOversight}
	decision := entity.Decision{
		Action:          entity.ActionEscalate,
		MatchedRuleID:   &ruleID,
		MatchedRuleName: "small spend",
		Rationale:       "routed to manual review",
	}

	prompt := w.buildDigestPrompt(p, tier, decision)

	assert.Contains(t, prompt, "Proposal: Code review assistant (team: platform)")
	assert.Contains(t, prompt, "Cost: 400.00")
	assert.Contains(t, prompt, "Risk score: 2")
	assert.Contains(t, prompt, "Data classification: internal")
	assert.Contains(t, prompt, "Escalation triggers: customer_data")
	assert.Contains(t, prompt, "Governance tier: Department Rollout (full_oversight pathway)")
	assert.Contains(t, prompt, "Decision: escalate")
	assert.Contains(t, prompt, "Matched rule: small spend")
	assert.Contains(t, prompt, "Rationale: routed to manual review")
}

func TestBuildDigestPrompt_OmitsUnsetFields(t *testing.T) {
	w := NewDigestWriter("test-key", "gpt-4o-mini", 0.3, zap.NewNop())

	p := &entity.Proposal{ID: 1, Title: "Trial", Team: "data", Cost: 99}
	tier := entity.GovernanceTier{Name: "Experiment", ApprovalPathway: entity.PathwayAuto}
	decision := entity.Decision{Action: entity.ActionApprove, Rationale: "matched"}

	prompt := w.buildDigestPrompt(p, tier, decision)

	assert.NotContains(t, prompt, "Risk score")
	assert.NotContains(t, prompt, "Data classification")
	assert.NotContains(t, prompt, "Escalation triggers")
	assert.NotContains(t, prompt, "Matched rule")
}
