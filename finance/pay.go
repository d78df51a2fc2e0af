// Package finance is the single home of the derived financial math: time
// entry pay, per-job revenue and profit, and the aggregate dashboard
// metrics. Every view and export calls into this package instead of
// re-deriving totals, so the numbers cannot drift between pages.
//
// All functions are pure and assume validated input (see the Validate
// methods in models): missing optional amounts are zeros, and zero
// denominators yield zero results rather than NaN or Inf.
package finance

import "github.com/atlasmoves/moveops/models"

// StandardDailyHours is the regular-hours ceiling per employee per day;
// anything beyond it is overtime.
const StandardDailyHours = 8.0

// SplitHours decomposes a worked span into regular and overtime hours.
// The two always sum back to the input for any non-negative span.
func SplitHours(worked float64) (regular, overtime float64) {
	if worked <= 0 {
		return 0, 0
	}
	if worked <= StandardDailyHours {
		return worked, 0
	}
	return StandardDailyHours, worked - StandardDailyHours
}

// OvertimeRate returns the rate applied to an entry's overtime hours:
// the entry's own overtime rate, or its plain hourly rate when no premium
// is configured.
func OvertimeRate(e models.TimeEntry) float64 {
	if e.OvertimeRate > 0 {
		return e.OvertimeRate
	}
	return e.HourlyRate
}

// TotalPay computes one time entry's pay:
//
//	regular_hours x hourly_rate + overtime_hours x overtime_rate + tip
//
// The entry card preview, payroll export, and aggregate payroll sum all go
// through this function.
func TotalPay(e models.TimeEntry) float64 {
	return e.RegularHours*e.HourlyRate + e.OvertimeHours*OvertimeRate(e) + e.TipAmount
}
