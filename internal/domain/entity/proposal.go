package entity

import "time"

// Proposal represents a submitted AI-adoption expenditure proposal.
// The portal's form layer materializes these; the engine only reads them.
type Proposal struct {
	ID                 int64      `json:"id"`
	Title              string     `json:"title"`
	Team               string     `json:"team"`
	Cost               float64    `json:"cost_of_solution"`
	RiskScore          *int       `json:"risk_score,omitempty"`
	DataClassification *string    `json:"data_classification,omitempty"`
	EscalationTriggers []string   `json:"escalation_triggers"`
	OversightStatus    string     `json:"oversight_status"`
	OversightNotes     string     `json:"oversight_notes"`
	TierID             string     `json:"tier_id,omitempty"`
	ProjectedAnnual    float64    `json:"projected_annual_value"`
	ActualAnnual       *float64   `json:"actual_annual_value,omitempty"`
	ValueVariance      *float64   `json:"value_variance,omitempty"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// HasTrigger reports whether the proposal carries the given escalation trigger key.
func (p *Proposal) HasTrigger(key string) bool {
	for _, t := range p.EscalationTriggers {
		if t == key {
			return true
		}
	}
	return false
}
