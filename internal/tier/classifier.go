// Package tier classifies proposals into governance tiers. Tiers are
// ordered ascending by cost range; escalation triggers override the cost
// scan entirely, and the no-match fallback always lands on the most
// stringent tier.
package tier

import (
	"sort"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

// Classify maps a proposal to a governance tier.
//
// Priority order, first decisive rule wins:
//  1. Escalation triggers. Any trigger resolving to the partner pathway
//     returns the partner tier; any other recognized or unrecognized
//     trigger returns the full-oversight tier. Escalation dominates cost.
//  2. Ascending first-match scan over the tiers. A tier matches when the
//     cost sits inside [CostMin, CostMax] (inclusive, nil CostMax means
//     unbounded), the risk score does not exceed MaxRiskScore, and the
//     data classification is allowed. An unset risk score or
//     classification passes its check.
//  3. No tier matched: fall back to the last tier. An awkward proposal
//     fails toward more scrutiny, never less.
func Classify(p entity.Proposal, tiers []entity.GovernanceTier, triggers []entity.EscalationTrigger) entity.GovernanceTier {
	ordered := make([]entity.GovernanceTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	if len(p.EscalationTriggers) > 0 {
		escalateTo := entity.PathwayFullOversight
		for _, key := range p.EscalationTriggers {
			for _, t := range triggers {
				if t.Trigger == key && t.EscalateTo == entity.PathwayPartner {
					escalateTo = entity.PathwayPartner
				}
			}
		}
		return tierForPathway(ordered, escalateTo)
	}

	for _, t := range ordered {
		if !costInRange(p.Cost, t) {
			continue
		}
		if p.RiskScore != nil && *p.RiskScore > t.MaxRiskScore {
			continue
		}
		if p.DataClassification != nil && !t.AllowsClassification(*p.DataClassification) {
			continue
		}
		return t
	}

	// Risk or classification excluded every cost-appropriate tier.
	return ordered[len(ordered)-1]
}

func costInRange(cost float64, t entity.GovernanceTier) bool {
	if cost < t.CostMin {
		return false
	}
	return t.CostMax == nil || cost <= *t.CostMax
}

// tierForPathway returns the first tier carrying the wanted pathway. By
// convention that is the highest-cost tier for partner; if configuration
// omits the pathway the last (most stringent) tier is used.
func tierForPathway(ordered []entity.GovernanceTier, pathway entity.ApprovalPathway) entity.GovernanceTier {
	for _, t := range ordered {
		if t.ApprovalPathway == pathway {
			return t
		}
	}
	return ordered[len(ordered)-1]
}
