package entity

// TimeSavingEntry is one line of a proposal's projected time savings,
// supplied per-calculation and never persisted by the engine.
type TimeSavingEntry struct {
	StaffLevel   string  `json:"staff_level"`
	HoursPerWeek float64 `json:"hours_per_week"`
}

// LevelContribution is the per-entry explainability record in an ROI
// breakdown. It preserves input order for the UI and audit trail; nothing
// downstream computes from it.
type LevelContribution struct {
	StaffLevel   string  `json:"staff_level"`
	HoursPerWeek float64 `json:"hours_per_week"`
	HourlyRate   float64 `json:"hourly_rate"`
	WeeklyValue  float64 `json:"weekly_value"`
	AnnualValue  float64 `json:"annual_value"`
}

// ROISummary is the derived financial picture of a proposal. PaybackMonths
// is +Inf when there are no savings to repay the cost.
type ROISummary struct {
	WeeklyValue   float64             `json:"weekly_value"`
	AnnualValue   float64             `json:"annual_value"`
	ROIPercent    float64             `json:"roi_percent"`
	PaybackMonths float64             `json:"payback_months"`
	Breakdown     []LevelContribution `json:"breakdown"`
}
