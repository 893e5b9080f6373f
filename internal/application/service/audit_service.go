package service

import (
	"context"
	"fmt"

	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/domain/entity"
)

// AuditService exposes the decision audit trail
type AuditService interface {
	ListByProposal(ctx context.Context, proposalID int64) ([]*entity.AuditEntry, error)
}

type auditServiceImpl struct {
	auditRepo port.AuditRepository
	logger    Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(auditRepo port.AuditRepository, logger Logger) AuditService {
	return &auditServiceImpl{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// ListByProposal returns the audit entries for one proposal, oldest first
func (s *auditServiceImpl) ListByProposal(ctx context.Context, proposalID int64) ([]*entity.AuditEntry, error) {
	entries, err := s.auditRepo.ListByProposal(ctx, proposalID)
	if err != nil {
		s.logger.Error("Failed to list audit entries", "error", err, "proposal_id", proposalID)
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}
