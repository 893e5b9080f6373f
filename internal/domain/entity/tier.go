package entity

// ApprovalPathway determines who signs off on a proposal in a given tier.
type ApprovalPathway string

const (
	PathwayAuto          ApprovalPathway = "auto"
	PathwayFastTrack     ApprovalPathway = "fast_track"
	PathwayFullOversight ApprovalPathway = "full_oversight"
	PathwayPartner       ApprovalPathway = "partner"
)

// GovernanceTier is one bracket of the review ladder. Tiers are static
// configuration, ordered ascending by cost range; Sequence fixes that order
// explicitly so matching never depends on incidental collection order.
type GovernanceTier struct {
	ID                         string          `json:"id"`
	Name                       string          `json:"name"`
	Sequence                   int             `json:"sequence"`
	CostMin                    float64         `json:"cost_min"`
	CostMax                    *float64        `json:"cost_max,omitempty"` // nil = unbounded
	MaxRiskScore               int             `json:"max_risk_score"`
	AllowedDataClassifications []string        `json:"allowed_data_classifications"`
	ApprovalPathway            ApprovalPathway `json:"approval_pathway"`
	RequiresROIProjection      bool            `json:"requires_roi_projection"`
	RequiresRiskAssessment     bool            `json:"requires_risk_assessment"`
	RequiresToolApproval       bool            `json:"requires_tool_approval"`
	RequiresPostReview         bool            `json:"requires_post_review"`
	PostReviewSchedule         []string        `json:"post_review_schedule,omitempty"`
}

// AllowsClassification reports whether the tier admits the given data
// classification. An unset classification on the proposal is permissive,
// handled by the classifier, not here.
func (t *GovernanceTier) AllowsClassification(class string) bool {
	for _, c := range t.AllowedDataClassifications {
		if c == class {
			return true
		}
	}
	return false
}

// EscalationTrigger forces a stricter tier irrespective of cost.
type EscalationTrigger struct {
	Trigger    string          `json:"trigger"`
	EscalateTo ApprovalPathway `json:"escalate_to"` // full_oversight or partner
	Label      string          `json:"label,omitempty"`
}
