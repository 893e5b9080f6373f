package entity

import "time"

// RateTable maps a staff seniority level to an hourly cost rate.
type RateTable map[string]float64

// RateCard is one row of the externally managed rate store. Only active
// rows are loaded into a RateTable.
type RateCard struct {
	ID         int64     `json:"id"`
	StaffLevel string    `json:"staff_level"`
	HourlyRate float64   `json:"hourly_rate"`
	IsActive   bool      `json:"is_active"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FallbackHourlyRate applies when a staff level resolves in neither the
// live table nor the defaults.
const FallbackHourlyRate = 100

// DefaultRates is the hardcoded fallback table used when the rate store is
// unreachable or empty. Treat as immutable.
var DefaultRates = RateTable{
	"junior":   80,
	"mid":      100,
	"senior":   120,
	"lead":     150,
	"director": 200,
}
