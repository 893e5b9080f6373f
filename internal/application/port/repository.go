package port

import (
	"context"
	"time"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

// ProposalRepository defines persistence operations for Proposal
type ProposalRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Proposal, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Proposal, error)
	ListDecided(ctx context.Context) ([]*entity.Proposal, error)
	ApplyDecision(ctx context.Context, id int64, status, notes, tierID string, reviewedAt time.Time) error
	SetActualValue(ctx context.Context, id int64, actual, variance float64) error
}

// RuleRepository defines persistence operations for AutoApprovalRule.
// ListActive returns only is_active rules, ordered by created_at ascending;
// that ordering is the evaluator's first-match contract.
type RuleRepository interface {
	ListActive(ctx context.Context) ([]entity.AutoApprovalRule, error)
	GetByID(ctx context.Context, id int64) (*entity.AutoApprovalRule, error)
	Create(ctx context.Context, rule *entity.AutoApprovalRule) error
	SetActive(ctx context.Context, id int64, active bool) error
}

// RateRepository reads the externally managed staff rate store
type RateRepository interface {
	ActiveRateCards(ctx context.Context) ([]*entity.RateCard, error)
}

// AuditRepository defines persistence operations for the decision audit trail
type AuditRepository interface {
	Create(ctx context.Context, e *entity.AuditEntry) error
	Exists(ctx context.Context, proposalID int64, action entity.DecisionAction, ruleID *int64) (bool, error)
	ListByProposal(ctx context.Context, proposalID int64) ([]*entity.AuditEntry, error)
}

// TransactionManager executes a function within a database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
