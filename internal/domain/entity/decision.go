package entity

import "time"

// DecisionAction is the outcome of an auto-approval evaluation.
type DecisionAction string

const (
	ActionApprove  DecisionAction = "approve"
	ActionReject   DecisionAction = "reject"
	ActionEscalate DecisionAction = "escalate"
)

// Decision is the engine's final output for one proposal evaluation. The
// caller persists it and applies side effects; the engine only produces it.
type Decision struct {
	Action             DecisionAction `json:"action"`
	MatchedRuleID      *int64         `json:"matched_rule_id,omitempty"`
	MatchedRuleName    string         `json:"matched_rule_name,omitempty"`
	ApprovalConditions string         `json:"approval_conditions,omitempty"`
	Rationale          string         `json:"rationale"`
}

// AuditEntry is one row of the decision audit trail. Every matched
// evaluation writes exactly one entry in the same transaction that applies
// the decision.
type AuditEntry struct {
	ID         int64          `json:"id"`
	RuleID     *int64         `json:"rule_id,omitempty"`
	ProposalID int64          `json:"form_id"`
	Action     DecisionAction `json:"action"`
	Reason     string         `json:"reason"`
	Timestamp  time.Time      `json:"timestamp"`
}
