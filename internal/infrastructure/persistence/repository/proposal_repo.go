package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/domain/entity"
	"github.com/calebryder/ai-governance/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// ProposalRepository implements port.ProposalRepository
type ProposalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *sql.DB, logger *zap.Logger) port.ProposalRepository {
	return &ProposalRepository{
		db:     db,
		logger: logger,
	}
}

const proposalColumns = `
	id, title, team, cost_of_solution, risk_score, data_classification,
	escalation_triggers, oversight_status, oversight_notes, tier_id,
	projected_annual_value, actual_annual_value, value_variance,
	reviewed_at, created_at, updated_at
`

// GetByID retrieves a proposal by ID. Returns (nil, nil) when no row exists.
func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	query := `SELECT` + proposalColumns + `FROM proposals WHERE id = ?`

	row := sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id)
	proposal, err := scanProposal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get proposal", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return proposal, nil
}

// List retrieves a page of proposals, newest first
func (r *ProposalRepository) List(ctx context.Context, limit, offset int) ([]*entity.Proposal, error) {
	query := `SELECT` + proposalColumns + `FROM proposals ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list proposals", zap.Error(err))
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	return collectProposals(rows)
}

// ListDecided returns proposals that carry a decision, oldest first, for
// the decision register export.
func (r *ProposalRepository) ListDecided(ctx context.Context) ([]*entity.Proposal, error) {
	query := `SELECT` + proposalColumns + `FROM proposals WHERE reviewed_at IS NOT NULL ORDER BY reviewed_at ASC`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list decided proposals", zap.Error(err))
		return nil, fmt.Errorf("failed to list decided proposals: %w", err)
	}
	defer rows.Close()

	return collectProposals(rows)
}

// ApplyDecision persists the evaluation outcome onto the proposal record
func (r *ProposalRepository) ApplyDecision(ctx context.Context, id int64, status, notes, tierID string, reviewedAt time.Time) error {
	query := `
		UPDATE proposals
		SET oversight_status = ?, oversight_notes = ?, tier_id = ?,
			reviewed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, status, notes, tierID, reviewedAt, id)
	if err != nil {
		r.logger.Error("Failed to apply decision", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to apply decision: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("proposal %d not found", id)
	}
	return nil
}

// SetActualValue records the realized annual value and its variance
func (r *ProposalRepository) SetActualValue(ctx context.Context, id int64, actual, variance float64) error {
	query := `
		UPDATE proposals
		SET actual_annual_value = ?, value_variance = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, actual, variance, id)
	if err != nil {
		r.logger.Error("Failed to set actual value", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set actual value: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("proposal %d not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProposal(row rowScanner) (*entity.Proposal, error) {
	var p entity.Proposal
	var riskScore sql.NullInt64
	var classification sql.NullString
	var triggers sql.NullString
	var actual, variance sql.NullFloat64
	var reviewedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Team,
		&p.Cost,
		&riskScore,
		&classification,
		&triggers,
		&p.OversightStatus,
		&p.OversightNotes,
		&p.TierID,
		&p.ProjectedAnnual,
		&actual,
		&variance,
		&reviewedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if riskScore.Valid {
		v := int(riskScore.Int64)
		p.RiskScore = &v
	}
	if classification.Valid && classification.String != "" {
		p.DataClassification = &classification.String
	}
	if triggers.Valid && triggers.String != "" {
		if err := json.Unmarshal([]byte(triggers.String), &p.EscalationTriggers); err != nil {
			return nil, fmt.Errorf("failed to parse escalation triggers: %w", err)
		}
	}
	if actual.Valid {
		p.ActualAnnual = &actual.Float64
	}
	if variance.Valid {
		p.ValueVariance = &variance.Float64
	}
	if reviewedAt.Valid {
		p.ReviewedAt = &reviewedAt.Time
	}

	return &p, nil
}

func collectProposals(rows *sql.Rows) ([]*entity.Proposal, error) {
	var proposals []*entity.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// Verify interface compliance
var _ port.ProposalRepository = (*ProposalRepository)(nil)
