package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func sp(v string) *string   { return &v }

func TestEvaluate_EmptyRuleSetEscalates(t *testing.T) {
	d := Evaluate(entity.Proposal{Cost: 100}, nil)

	assert.Equal(t, entity.ActionEscalate, d.Action)
	assert.Nil(t, d.MatchedRuleID)
	assert.Contains(t, d.Rationale, "No auto-approval rules configured")
}

func TestEvaluate_NoMatchEscalates(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{ID: 1, Name: "small spend", IsActive: true, MaxCost: fp(500), Combine: entity.CombineAll, AutoApprove: true},
	}

	d := Evaluate(entity.Proposal{Cost: 9000}, ruleSet)

	assert.Equal(t, entity.ActionEscalate, d.Action)
	assert.Nil(t, d.MatchedRuleID)
	assert.Contains(t, d.Rationale, "No auto-approval rules matched")
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{ID: 1, Name: "earlier", IsActive: true, MaxCost: fp(1000), Combine: entity.CombineAll, AutoApprove: true},
		{ID: 2, Name: "later", IsActive: true, MaxCost: fp(1000), Combine: entity.CombineAll, AutoApprove: false},
	}

	d := Evaluate(entity.Proposal{Cost: 400}, ruleSet)

	assert.Equal(t, entity.ActionApprove, d.Action)
	require.NotNil(t, d.MatchedRuleID)
	assert.Equal(t, int64(1), *d.MatchedRuleID)
	assert.Equal(t, "earlier", d.MatchedRuleName)
}

func TestEvaluate_InactiveRulesSkipped(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{ID: 1, Name: "disabled", IsActive: false, MaxCost: fp(1000), Combine: entity.CombineAll, AutoApprove: true},
		{ID: 2, Name: "live", IsActive: true, MaxCost: fp(1000), Combine: entity.CombineAll, AutoApprove: true},
	}

	d := Evaluate(entity.Proposal{Cost: 400}, ruleSet)

	require.NotNil(t, d.MatchedRuleID)
	assert.Equal(t, int64(2), *d.MatchedRuleID)
}

func TestEvaluate_BlankRuleNeverMatches(t *testing.T) {
	// No thresholds set at all: the rule has zero applicable conditions
	// and must not act as a blanket approval.
	ruleSet := []entity.AutoApprovalRule{
		{ID: 1, Name: "blank", IsActive: true, Combine: entity.CombineAll, AutoApprove: true},
	}

	d := Evaluate(entity.Proposal{Cost: 1}, ruleSet)
	assert.Equal(t, entity.ActionEscalate, d.Action)
}

func TestEvaluate_RiskConditionNeedsBothSides(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{ID: 1, Name: "risk only", IsActive: true, MaxRiskScore: ip(2), Combine: entity.CombineAll, AutoApprove: true},
	}

	// Proposal carries no risk score: the condition is inapplicable and
	// the rule is left with zero conditions.
	d := Evaluate(entity.Proposal{Cost: 100}, ruleSet)
	assert.Equal(t, entity.ActionEscalate, d.Action)

	// With a score present the condition applies and can match.
	d = Evaluate(entity.Proposal{Cost: 100, RiskScore: ip(1)}, ruleSet)
	assert.Equal(t, entity.ActionApprove, d.Action)
}

func TestEvaluate_UnclassifiedProposalFailsClassificationCondition(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{
			ID: 1, Name: "internal only", IsActive: true,
			AllowedDataClassifications: []string{entity.ClassificationInternal},
			Combine:                    entity.CombineAll, AutoApprove: true,
		},
	}

	d := Evaluate(entity.Proposal{Cost: 100}, ruleSet)
	assert.Equal(t, entity.ActionEscalate, d.Action)

	d = Evaluate(entity.Proposal{Cost: 100, DataClassification: sp(entity.ClassificationInternal)}, ruleSet)
	assert.Equal(t, entity.ActionApprove, d.Action)
}

func TestEvaluate_CombineModes(t *testing.T) {
	rule := entity.AutoApprovalRule{
		ID: 1, Name: "mixed", IsActive: true,
		MaxCost:      fp(500),
		AllowedTeams: []string{"platform"},
		AutoApprove:  true,
	}

	// Cost fails, team passes.
	p := entity.Proposal{Cost: 800, Team: "platform"}

	rule.Combine = entity.CombineAll
	d := Evaluate(p, []entity.AutoApprovalRule{rule})
	assert.Equal(t, entity.ActionEscalate, d.Action, "all mode needs every condition")

	rule.Combine = entity.CombineAny
	d = Evaluate(p, []entity.AutoApprovalRule{rule})
	assert.Equal(t, entity.ActionApprove, d.Action, "any mode needs one condition")
}

func TestEvaluate_UnknownCombineModeReadAsAll(t *testing.T) {
	rule := entity.AutoApprovalRule{
		ID: 1, Name: "odd mode", IsActive: true,
		MaxCost:      fp(500),
		AllowedTeams: []string{"platform"},
		Combine:      entity.CombineMode("sometimes"),
		AutoApprove:  true,
	}

	d := Evaluate(entity.Proposal{Cost: 800, Team: "platform"}, []entity.AutoApprovalRule{rule})
	assert.Equal(t, entity.ActionEscalate, d.Action)
}

func TestEvaluate_RejectRule(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{
			ID: 1, Name: "block restricted", IsActive: true,
			AllowedDataClassifications: []string{entity.ClassificationRestricted},
			Combine:                    entity.CombineAll, AutoApprove: false,
		},
	}

	d := Evaluate(entity.Proposal{Cost: 100, DataClassification: sp(entity.ClassificationRestricted)}, ruleSet)

	assert.Equal(t, entity.ActionReject, d.Action)
	assert.Contains(t, d.Rationale, "auto-rejected")
}

func TestEvaluate_RationaleTracesConditions(t *testing.T) {
	ruleSet := []entity.AutoApprovalRule{
		{
			ID: 7, Name: "low spend internal", IsActive: true,
			MaxCost:                    fp(1000),
			AllowedDataClassifications: []string{entity.ClassificationInternal},
			Combine:                    entity.CombineAll,
			AutoApprove:                true,
			ApprovalConditions:         "report usage after 90 days",
		},
	}

	p := entity.Proposal{Cost: 250, DataClassification: sp(entity.ClassificationInternal)}
	d := Evaluate(p, ruleSet)

	require.Equal(t, entity.ActionApprove, d.Action)
	assert.Equal(t, "report usage after 90 days", d.ApprovalConditions)
	assert.Contains(t, d.Rationale, `rule "low spend internal"`)
	assert.Contains(t, d.Rationale, "all mode")
	assert.Contains(t, d.Rationale, "cost 250.00 <= 1000.00: met")
	assert.Contains(t, d.Rationale, `classification "internal" allowed: met`)
}
