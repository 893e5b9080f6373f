package service

import (
	"context"
	"fmt"
	"time"

	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/domain/entity"
	"github.com/calebryder/ai-governance/internal/domain/lifecycle"
	"github.com/calebryder/ai-governance/internal/rates"
	"github.com/calebryder/ai-governance/internal/roi"
	"github.com/calebryder/ai-governance/internal/rules"
	"github.com/calebryder/ai-governance/internal/tier"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// EvaluationResult bundles everything one evaluation produced.
type EvaluationResult struct {
	Proposal *entity.Proposal       `json:"proposal"`
	Tier     entity.GovernanceTier  `json:"tier"`
	Decision entity.Decision        `json:"decision"`
	Digest   string                 `json:"digest,omitempty"`
}

// ProposalService runs the tiering and auto-approval pipeline for proposals
type ProposalService interface {
	Evaluate(ctx context.Context, proposalID int64) (*EvaluationResult, error)
	ComputeROI(ctx context.Context, entries []entity.TimeSavingEntry, cost float64) (entity.ROISummary, error)
	RecordActual(ctx context.Context, proposalID int64, actualAnnual float64) (float64, error)
	GetProposal(ctx context.Context, proposalID int64) (*entity.Proposal, error)
	ListProposals(ctx context.Context, limit, offset int) ([]*entity.Proposal, error)
}

type proposalServiceImpl struct {
	proposalRepo port.ProposalRepository
	ruleRepo     port.RuleRepository
	auditRepo    port.AuditRepository
	txManager    port.TransactionManager
	resolver     *rates.Resolver
	tierCfg      tier.Config
	digestWriter port.DigestWriter // optional, may be nil
	logger       Logger
	now          func() time.Time
}

// NewProposalService creates a new ProposalService
func NewProposalService(
	proposalRepo port.ProposalRepository,
	ruleRepo port.RuleRepository,
	auditRepo port.AuditRepository,
	txManager port.TransactionManager,
	resolver *rates.Resolver,
	tierCfg tier.Config,
	digestWriter port.DigestWriter,
	logger Logger,
) ProposalService {
	return &proposalServiceImpl{
		proposalRepo: proposalRepo,
		ruleRepo:     ruleRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		resolver:     resolver,
		tierCfg:      tierCfg,
		digestWriter: digestWriter,
		logger:       logger,
		now:          time.Now,
	}
}

// Evaluate classifies a proposal into a governance tier, matches it against
// the active auto-approval rules, and applies the resulting decision. The
// audit entry and the proposal update are written in one transaction:
// a decision without its audit row is a compliance defect, so neither is
// committed without the other.
func (s *proposalServiceImpl) Evaluate(ctx context.Context, proposalID int64) (*EvaluationResult, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		s.logger.Error("Failed to load proposal", "error", err, "proposal_id", proposalID)
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if proposal == nil {
		return nil, fmt.Errorf("proposal %d not found", proposalID)
	}

	matchedTier := tier.Classify(*proposal, s.tierCfg.Tiers, s.tierCfg.Triggers)

	// Snapshot of the rule set; configuration changes apply from the next
	// evaluation onward.
	ruleSet, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Failed to load rules", "error", err, "proposal_id", proposalID)
		return nil, fmt.Errorf("list active rules: %w", err)
	}

	decision := rules.Evaluate(*proposal, ruleSet)

	if err := s.applyDecision(ctx, proposal, matchedTier, decision); err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		Proposal: proposal,
		Tier:     matchedTier,
		Decision: decision,
	}

	// Digest is advisory prose; a failure never blocks the decision.
	if s.digestWriter != nil {
		digest, err := s.digestWriter.WriteDigest(ctx, proposal, matchedTier, decision)
		if err != nil {
			s.logger.Error("Digest generation failed", "error", err, "proposal_id", proposalID)
		} else {
			result.Digest = digest
		}
	}

	s.logger.Info("Proposal evaluated",
		"proposal_id", proposalID,
		"tier", matchedTier.ID,
		"action", string(decision.Action),
	)
	return result, nil
}

// applyDecision persists the decision and its audit entry. Idempotent:
// re-applying the same decision to the same proposal neither duplicates
// the audit row nor changes the outcome.
func (s *proposalServiceImpl) applyDecision(ctx context.Context, proposal *entity.Proposal, matchedTier entity.GovernanceTier, decision entity.Decision) error {
	status := statusForAction(decision.Action)

	already, err := s.auditRepo.Exists(ctx, proposal.ID, decision.Action, decision.MatchedRuleID)
	if err != nil {
		return fmt.Errorf("check audit trail: %w", err)
	}
	if already && proposal.OversightStatus == status {
		s.logger.Info("Decision already applied", "proposal_id", proposal.ID, "action", string(decision.Action))
		return nil
	}

	if err := lifecycle.Transition(proposal.OversightStatus, status); err != nil {
		return fmt.Errorf("apply decision to proposal %d: %w", proposal.ID, err)
	}

	reviewedAt := s.now()
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if !already {
			audit := &entity.AuditEntry{
				RuleID:     decision.MatchedRuleID,
				ProposalID: proposal.ID,
				Action:     decision.Action,
				Reason:     decision.Rationale,
				Timestamp:  reviewedAt,
			}
			if err := s.auditRepo.Create(txCtx, audit); err != nil {
				return fmt.Errorf("create audit entry: %w", err)
			}
		}

		if err := s.proposalRepo.ApplyDecision(txCtx, proposal.ID, status, decision.Rationale, matchedTier.ID, reviewedAt); err != nil {
			return fmt.Errorf("apply decision: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to apply decision", "error", err, "proposal_id", proposal.ID)
		return err
	}

	proposal.OversightStatus = status
	proposal.OversightNotes = decision.Rationale
	proposal.TierID = matchedTier.ID
	proposal.ReviewedAt = &reviewedAt
	return nil
}

// ComputeROI resolves the current rate table and runs the calculator.
func (s *proposalServiceImpl) ComputeROI(ctx context.Context, entries []entity.TimeSavingEntry, cost float64) (entity.ROISummary, error) {
	table := s.resolver.Resolve(ctx)
	return roi.Compute(entries, cost, table), nil
}

// RecordActual stores a realized annual value and returns the variance
// against the proposal's original projection.
func (s *proposalServiceImpl) RecordActual(ctx context.Context, proposalID int64, actualAnnual float64) (float64, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return 0, fmt.Errorf("get proposal: %w", err)
	}
	if proposal == nil {
		return 0, fmt.Errorf("proposal %d not found", proposalID)
	}

	variance := roi.Variance(proposal.ProjectedAnnual, actualAnnual)
	if err := s.proposalRepo.SetActualValue(ctx, proposalID, actualAnnual, variance); err != nil {
		s.logger.Error("Failed to record actual value", "error", err, "proposal_id", proposalID)
		return 0, fmt.Errorf("set actual value: %w", err)
	}

	s.logger.Info("Actual value recorded",
		"proposal_id", proposalID,
		"actual_annual", actualAnnual,
		"variance_pct", variance,
	)
	return variance, nil
}

// GetProposal retrieves a proposal by ID
func (s *proposalServiceImpl) GetProposal(ctx context.Context, proposalID int64) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		s.logger.Error("Failed to get proposal", "error", err, "proposal_id", proposalID)
		return nil, err
	}
	return proposal, nil
}

// ListProposals retrieves a page of proposals, newest first
func (s *proposalServiceImpl) ListProposals(ctx context.Context, limit, offset int) ([]*entity.Proposal, error) {
	proposals, err := s.proposalRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list proposals", "error", err, "limit", limit, "offset", offset)
		return nil, err
	}
	return proposals, nil
}

func statusForAction(action entity.DecisionAction) string {
	switch action {
	case entity.ActionApprove:
		return entity.StatusAutoApproved
	case entity.ActionReject:
		return entity.StatusAutoRejected
	default:
		return entity.StatusInReview
	}
}
