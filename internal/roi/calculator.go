// Package roi computes the financial return of an AI-adoption proposal:
// weekly/annual value of projected time savings, ROI percentage, payback
// period, and projected-vs-actual variance. Everything here is pure
// arithmetic over the inputs; formatting and persistence live elsewhere.
package roi

import (
	"math"

	"github.com/calebryder/ai-governance/internal/domain/entity"
	"github.com/calebryder/ai-governance/internal/rates"
)

// WeeksPerYear is the fixed annualization factor. No leap-week adjustment.
const WeeksPerYear = 52

// Compute converts time-saving entries plus a cost into an ROISummary.
//
// ROI is 0 for a non-positive cost rather than a division error, and
// payback is +Inf when the savings never repay the cost. The breakdown
// preserves input order so reviewers can see each level's contribution.
func Compute(entries []entity.TimeSavingEntry, cost float64, table entity.RateTable) entity.ROISummary {
	summary := entity.ROISummary{
		Breakdown: make([]entity.LevelContribution, 0, len(entries)),
	}

	for _, e := range entries {
		rate := rates.RateFor(e.StaffLevel, table)
		weekly := e.HoursPerWeek * rate

		summary.WeeklyValue += weekly
		summary.Breakdown = append(summary.Breakdown, entity.LevelContribution{
			StaffLevel:   e.StaffLevel,
			HoursPerWeek: e.HoursPerWeek,
			HourlyRate:   rate,
			WeeklyValue:  weekly,
			AnnualValue:  weekly * WeeksPerYear,
		})
	}

	summary.AnnualValue = summary.WeeklyValue * WeeksPerYear

	if cost > 0 {
		summary.ROIPercent = summary.AnnualValue / cost * 100
	}

	if summary.AnnualValue > 0 {
		summary.PaybackMonths = cost / summary.AnnualValue * 12
	} else {
		summary.PaybackMonths = math.Inf(1)
	}

	return summary
}

// Variance returns the percentage deviation of an actual outcome from its
// projection. Positive means the actual exceeded the projection. A zero
// projection yields 0 so unprojected proposals never report a variance.
func Variance(projected, actual float64) float64 {
	if projected == 0 {
		return 0
	}
	return (actual - projected) / projected * 100
}
