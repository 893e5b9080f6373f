// Package rules matches proposals against the admin-configured
// auto-approval rule set. The evaluator is pure: it takes a snapshot of
// active rules in creation order and returns a total Decision; persistence
// and audit writes belong to the calling service.
package rules

import (
	"fmt"
	"strings"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

type conditionResult struct {
	label string
	met   bool
}

// Evaluate scans the rules in order and returns the decision of the first
// matching rule, or an escalate decision when nothing matches.
//
// A condition whose threshold is unset on the rule is simply not part of
// that rule. A rule with zero applicable conditions never matches:
// a blank rule must not become a blanket approval.
func Evaluate(p entity.Proposal, ruleSet []entity.AutoApprovalRule) entity.Decision {
	if len(ruleSet) == 0 {
		return entity.Decision{
			Action:    entity.ActionEscalate,
			Rationale: "No auto-approval rules configured; routed to manual review",
		}
	}

	for i := range ruleSet {
		rule := &ruleSet[i]
		if !rule.IsActive {
			continue
		}

		results := applicableConditions(p, rule)
		if len(results) == 0 {
			continue
		}

		if combine(results, rule.Combine) {
			return matchDecision(rule, results)
		}
	}

	return entity.Decision{
		Action:    entity.ActionEscalate,
		Rationale: "No auto-approval rules matched; routed to manual review",
	}
}

// applicableConditions builds the per-rule condition trace, skipping any
// condition whose threshold field is unset.
func applicableConditions(p entity.Proposal, rule *entity.AutoApprovalRule) []conditionResult {
	var results []conditionResult

	if rule.MaxCost != nil {
		met := p.Cost <= *rule.MaxCost
		results = append(results, conditionResult{
			label: fmt.Sprintf("cost %.2f <= %.2f: %s", p.Cost, *rule.MaxCost, metWord(met)),
			met:   met,
		})
	}

	if rule.MaxRiskScore != nil && p.RiskScore != nil {
		met := *p.RiskScore <= *rule.MaxRiskScore
		results = append(results, conditionResult{
			label: fmt.Sprintf("risk %d <= %d: %s", *p.RiskScore, *rule.MaxRiskScore, metWord(met)),
			met:   met,
		})
	}

	if rule.AllowedDataClassifications != nil {
		// An unclassified proposal cannot satisfy a classification condition.
		met := false
		class := "unset"
		if p.DataClassification != nil {
			class = *p.DataClassification
			met = contains(rule.AllowedDataClassifications, class)
		}
		results = append(results, conditionResult{
			label: fmt.Sprintf("classification %q allowed: %s", class, metWord(met)),
			met:   met,
		})
	}

	if rule.AllowedTeams != nil {
		met := contains(rule.AllowedTeams, p.Team)
		results = append(results, conditionResult{
			label: fmt.Sprintf("team %q allowed: %s", p.Team, metWord(met)),
			met:   met,
		})
	}

	return results
}

func combine(results []conditionResult, mode entity.CombineMode) bool {
	switch mode {
	case entity.CombineAny:
		for _, r := range results {
			if r.met {
				return true
			}
		}
		return false
	default:
		// CombineAll, and the safe reading of an unrecognized mode.
		for _, r := range results {
			if !r.met {
				return false
			}
		}
		return true
	}
}

func matchDecision(rule *entity.AutoApprovalRule, results []conditionResult) entity.Decision {
	action := entity.ActionReject
	verb := "auto-rejected"
	if rule.AutoApprove {
		action = entity.ActionApprove
		verb = "auto-approved"
	}

	trace := make([]string, 0, len(results))
	for _, r := range results {
		trace = append(trace, r.label)
	}

	ruleID := rule.ID
	return entity.Decision{
		Action:             action,
		MatchedRuleID:      &ruleID,
		MatchedRuleName:    rule.Name,
		ApprovalConditions: rule.ApprovalConditions,
		Rationale: fmt.Sprintf("Proposal %s by rule %q (%s mode): %s",
			verb, rule.Name, rule.Combine, strings.Join(trace, "; ")),
	}
}

func metWord(met bool) string {
	if met {
		return "met"
	}
	return "not met"
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
