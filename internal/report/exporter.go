// Package report renders the decision register: an Excel workbook listing
// every decided proposal with its tier, outcome, and financial figures,
// for quarterly governance reviews.
package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/calebryder/ai-governance/internal/application/port"
)

const (
	registerSheet = "Decisions"
	headerRow     = 1
)

var registerColumns = []string{
	"ID", "Title", "Team", "Cost", "Risk Score", "Data Classification",
	"Tier", "Status", "Projected Annual Value", "Actual Annual Value",
	"Variance %", "Reviewed At", "Notes",
}

// Exporter builds decision register workbooks
type Exporter struct {
	proposalRepo port.ProposalRepository
	logger       *zap.Logger
}

// NewExporter creates a new Exporter
func NewExporter(proposalRepo port.ProposalRepository, logger *zap.Logger) *Exporter {
	return &Exporter{
		proposalRepo: proposalRepo,
		logger:       logger,
	}
}

// DecisionRegister renders all decided proposals into an xlsx workbook and
// returns its bytes for download.
func (e *Exporter) DecisionRegister(ctx context.Context) ([]byte, error) {
	proposals, err := e.proposalRepo.ListDecided(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load decided proposals: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), registerSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, title := range registerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := file.SetCellValue(registerSheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, p := range proposals {
		row := headerRow + 1 + i

		values := []interface{}{
			p.ID,
			p.Title,
			p.Team,
			p.Cost,
			nullableInt(p.RiskScore),
			nullableString(p.DataClassification),
			p.TierID,
			p.OversightStatus,
			p.ProjectedAnnual,
			nullableFloat(p.ActualAnnual),
			nullableFloat(p.ValueVariance),
			reviewedAt(p.ReviewedAt),
			p.OversightNotes,
		}

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := file.SetCellValue(registerSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	e.logger.Info("Decision register exported", zap.Int("proposals", len(proposals)))
	return buf.Bytes(), nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func nullableFloat(v *float64) interface{} {
	if v == nil || math.IsInf(*v, 0) {
		return ""
	}
	return *v
}

func reviewedAt(v *time.Time) interface{} {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02 15:04:05")
}
