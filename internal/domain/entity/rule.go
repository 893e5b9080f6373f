package entity

import "time"

// CombineMode says how a rule's condition results are combined. It is a
// tagged choice rather than a bool so the AND/OR meaning cannot be silently
// inverted at a call site.
type CombineMode string

const (
	CombineAll CombineMode = "all" // every applicable condition must hold
	CombineAny CombineMode = "any" // at least one applicable condition must hold
)

// AutoApprovalRule is an admin-configured rule that can decide a proposal
// without human review. Threshold fields are pointers: nil means the
// condition is not part of this rule. Rules are evaluated in CreatedAt
// order, first match wins.
type AutoApprovalRule struct {
	ID                         int64       `json:"id"`
	Name                       string      `json:"name"`
	IsActive                   bool        `json:"is_active"`
	MaxCost                    *float64    `json:"max_cost,omitempty"`
	MaxRiskScore               *int        `json:"max_risk_score,omitempty"`
	AllowedDataClassifications []string    `json:"allowed_data_classifications,omitempty"`
	AllowedTeams               []string    `json:"allowed_teams,omitempty"`
	Combine                    CombineMode `json:"combine"`
	AutoApprove                bool        `json:"auto_approve"`
	ApprovalConditions         string      `json:"approval_conditions,omitempty"`
	CreatedAt                  time.Time   `json:"created_at"`
}
