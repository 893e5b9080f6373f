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

// RateRepository implements port.RateRepository
type RateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRateRepository creates a new rate repository
func NewRateRepository(db *sql.DB, logger *zap.Logger) port.RateRepository {
	return &RateRepository{
		db:     db,
		logger: logger,
	}
}

// ActiveRateCards returns the active rows of the staff rate store
func (r *RateRepository) ActiveRateCards(ctx context.Context) ([]*entity.RateCard, error) {
	query := `
		SELECT id, staff_level, hourly_rate, is_active, updated_at
		FROM rate_cards
		WHERE is_active = 1
		ORDER BY staff_level ASC
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to read rate cards", zap.Error(err))
		return nil, fmt.Errorf("failed to read rate cards: %w", err)
	}
	defer rows.Close()

	var cards []*entity.RateCard
	for rows.Next() {
		var card entity.RateCard
		if err := rows.Scan(&card.ID, &card.StaffLevel, &card.HourlyRate, &card.IsActive, &card.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate card: %w", err)
		}
		cards = append(cards, &card)
	}
	return cards, rows.Err()
}

// Verify interface compliance
var _ port.RateRepository = (*RateRepository)(nil)
