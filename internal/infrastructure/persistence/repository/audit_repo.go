package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/domain/entity"
	"github.com/calebryder/ai-governance/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// AuditRepository implements port.AuditRepository
type AuditRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB, logger *zap.Logger) port.AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts one audit entry
func (r *AuditRepository) Create(ctx context.Context, e *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_log (rule_id, form_id, action, reason, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		e.RuleID,
		e.ProposalID,
		string(e.Action),
		e.Reason,
		e.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create audit entry", zap.Int64("form_id", e.ProposalID), zap.Error(err))
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// Exists reports whether an entry for this proposal, action, and rule is
// already recorded. Backs the idempotency of decision application.
func (r *AuditRepository) Exists(ctx context.Context, proposalID int64, action entity.DecisionAction, ruleID *int64) (bool, error) {
	query := `
		SELECT COUNT(1) FROM audit_log
		WHERE form_id = ? AND action = ? AND rule_id IS ?
	`

	var count int
	err := sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, proposalID, string(action), ruleID).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to check audit entry", zap.Int64("form_id", proposalID), zap.Error(err))
		return false, fmt.Errorf("failed to check audit entry: %w", err)
	}
	return count > 0, nil
}

// ListByProposal returns the audit entries for one proposal, oldest first
func (r *AuditRepository) ListByProposal(ctx context.Context, proposalID int64) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, rule_id, form_id, action, reason, timestamp
		FROM audit_log
		WHERE form_id = ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, proposalID)
	if err != nil {
		r.logger.Error("Failed to list audit entries", zap.Int64("form_id", proposalID), zap.Error(err))
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var ruleID sql.NullInt64
		var action string

		if err := rows.Scan(&e.ID, &ruleID, &e.ProposalID, &action, &e.Reason, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if ruleID.Valid {
			e.RuleID = &ruleID.Int64
		}
		e.Action = entity.DecisionAction(action)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Verify interface compliance
var _ port.AuditRepository = (*AuditRepository)(nil)
