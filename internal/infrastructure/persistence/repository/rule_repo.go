package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/domain/entity"
	"github.com/calebryder/ai-governance/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

// RuleRepository implements port.RuleRepository
type RuleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRuleRepository creates a new rule repository
func NewRuleRepository(db *sql.DB, logger *zap.Logger) port.RuleRepository {
	return &RuleRepository{
		db:     db,
		logger: logger,
	}
}

const ruleColumns = `
	id, name, is_active, max_cost, max_risk_score,
	allowed_data_classifications, allowed_teams,
	require_all_conditions, auto_approve, approval_conditions, created_at
`

// ListActive returns active rules ordered by creation time ascending.
// That ordering is the evaluator's first-match-wins contract; it must not
// depend on incidental row order.
func (r *RuleRepository) ListActive(ctx context.Context) ([]entity.AutoApprovalRule, error) {
	query := `SELECT` + ruleColumns + `FROM approval_rules WHERE is_active = 1 ORDER BY created_at ASC, id ASC`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list active rules", zap.Error(err))
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	defer rows.Close()

	var ruleSet []entity.AutoApprovalRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		ruleSet = append(ruleSet, *rule)
	}
	return ruleSet, rows.Err()
}

// GetByID retrieves a rule by ID. Returns (nil, nil) when no row exists.
func (r *RuleRepository) GetByID(ctx context.Context, id int64) (*entity.AutoApprovalRule, error) {
	query := `SELECT` + ruleColumns + `FROM approval_rules WHERE id = ?`

	row := sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id)
	rule, err := scanRule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get rule", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return rule, nil
}

// Create inserts a new rule
func (r *RuleRepository) Create(ctx context.Context, rule *entity.AutoApprovalRule) error {
	classifications, err := marshalNullableSet(rule.AllowedDataClassifications)
	if err != nil {
		return err
	}
	teams, err := marshalNullableSet(rule.AllowedTeams)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO approval_rules (
			name, is_active, max_cost, max_risk_score,
			allowed_data_classifications, allowed_teams,
			require_all_conditions, auto_approve, approval_conditions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		rule.Name,
		rule.IsActive,
		rule.MaxCost,
		rule.MaxRiskScore,
		classifications,
		teams,
		rule.Combine != entity.CombineAny,
		rule.AutoApprove,
		rule.ApprovalConditions,
	)
	if err != nil {
		r.logger.Error("Failed to create rule", zap.String("name", rule.Name), zap.Error(err))
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rule.ID = id
	return nil
}

// SetActive activates or deactivates a rule
func (r *RuleRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE approval_rules SET is_active = ? WHERE id = ?`

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query, active, id)
	if err != nil {
		r.logger.Error("Failed to set rule active flag", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set rule active flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %d not found", id)
	}
	return nil
}

func scanRule(row rowScanner) (*entity.AutoApprovalRule, error) {
	var rule entity.AutoApprovalRule
	var maxCost sql.NullFloat64
	var maxRisk sql.NullInt64
	var classifications, teams sql.NullString
	var requireAll bool

	err := row.Scan(
		&rule.ID,
		&rule.Name,
		&rule.IsActive,
		&maxCost,
		&maxRisk,
		&classifications,
		&teams,
		&requireAll,
		&rule.AutoApprove,
		&rule.ApprovalConditions,
		&rule.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxCost.Valid {
		rule.MaxCost = &maxCost.Float64
	}
	if maxRisk.Valid {
		v := int(maxRisk.Int64)
		rule.MaxRiskScore = &v
	}
	if classifications.Valid && classifications.String != "" {
		if err := json.Unmarshal([]byte(classifications.String), &rule.AllowedDataClassifications); err != nil {
			return nil, fmt.Errorf("failed to parse allowed classifications: %w", err)
		}
	}
	if teams.Valid && teams.String != "" {
		if err := json.Unmarshal([]byte(teams.String), &rule.AllowedTeams); err != nil {
			return nil, fmt.Errorf("failed to parse allowed teams: %w", err)
		}
	}

	// The stored flag becomes the tagged combine mode at this boundary so
	// the rest of the system never reasons about a raw bool.
	if requireAll {
		rule.Combine = entity.CombineAll
	} else {
		rule.Combine = entity.CombineAny
	}

	return &rule, nil
}

// marshalNullableSet keeps nil sets as SQL NULL; a nil set means the
// condition is not configured, which is different from an empty set.
func marshalNullableSet(set []string) (interface{}, error) {
	if set == nil {
		return nil, nil
	}
	data, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal set: %w", err)
	}
	return string(data), nil
}

// Verify interface compliance
var _ port.RuleRepository = (*RuleRepository)(nil)
