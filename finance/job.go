package finance

import "github.com/atlasmoves/moveops/models"

// StandardMinimumHours is the billing floor applied to per-person estimates
// at scheduling time, before the actual duration is known.
const StandardMinimumHours = 2.0

// OvertimePremium is the multiplier applied to crew overtime hours when
// recomputing labor cost for job profit. Time entries carry their own
// configurable overtime rate; job profit deliberately keeps this fixed
// multiplier instead (see JobProfit).
const OvertimePremium = 1.5

// EstimatedTotal computes a job's estimate from its pricing model.
//
// Per-person jobs are quoted as rate x movers x the two-hour minimum.
// Flat-rate jobs are quoted as the negotiated hourly figure times the
// agreed hours; the client's actual payment is tracked separately in
// TotalAmountReceived and may exceed this due to tips or overages.
func EstimatedTotal(j models.Job) float64 {
	switch j.PricingModel {
	case models.PricingPerPerson:
		return j.HourlyRate * float64(j.MoversNeeded) * StandardMinimumHours
	case models.PricingFlatRate:
		return j.FlatHourlyRate * j.HoursWorked
	}
	return 0
}

// FlatRateLaborCost is the employee cost of a flat-rate job.
func FlatRateLaborCost(j models.Job) float64 {
	return j.WorkerHourlyRate * float64(j.MoversNeeded) * j.HoursWorked
}

// JobProfitResult is the per-job profit breakdown shown on completed
// per-person jobs. Computed is false until the job completes; the UI shows
// "will be calculated after completion" in that case.
type JobProfitResult struct {
	RegularLaborCost  float64 `json:"regularLaborCost"`
	OvertimeLaborCost float64 `json:"overtimeLaborCost"`
	TruckRentalCost   float64 `json:"truckRentalCost"`
	TruckGasCost      float64 `json:"truckGasCost"`
	Profit            float64 `json:"profit"`
	Computed          bool    `json:"computed"`
}

// JobProfit computes post-completion profit for a per-person job:
//
//	actual_total - (regular labor + overtime labor + truck rental + gas)
//
// Labor is recomputed from the actual duration using the same eight-hour
// split as time-entry pay, scaled by crew size: the first 8 x movers
// aggregate hours are regular, the remainder is overtime at the fixed 1.5x
// premium on the worker rate. Note this premium can differ from the
// per-entry overtime rates used in payroll; the two are kept as separate
// policies on purpose.
func JobProfit(j models.Job) JobProfitResult {
	if !j.IsCompleted() || j.PricingModel != models.PricingPerPerson {
		return JobProfitResult{}
	}

	movers := float64(j.MoversNeeded)
	aggregateHours := j.ActualDurationHours * movers
	regularCap := StandardDailyHours * movers

	regularHours := aggregateHours
	overtimeHours := 0.0
	if aggregateHours > regularCap {
		regularHours = regularCap
		overtimeHours = aggregateHours - regularCap
	}

	res := JobProfitResult{
		RegularLaborCost:  regularHours * j.WorkerHourlyRate,
		OvertimeLaborCost: overtimeHours * j.WorkerHourlyRate * OvertimePremium,
		TruckRentalCost:   j.TruckRentalCost,
		TruckGasCost:      j.TruckGasCost,
		Computed:          true,
	}
	res.Profit = j.ActualTotal - res.RegularLaborCost - res.OvertimeLaborCost -
		res.TruckRentalCost - res.TruckGasCost
	return res
}

// TruckProfit is the margin on the optional truck add-on, computed
// independently of the move itself.
func TruckProfit(j models.Job) float64 {
	return j.TruckServiceFee - j.TruckRentalCost - j.TruckGasCost
}

// CompletedRevenue is the revenue a completed job contributes to the books:
// the actual total, falling back to the estimate when the actual was never
// filled in. Non-completed jobs contribute nothing.
func CompletedRevenue(j models.Job) float64 {
	if !j.IsCompleted() {
		return 0
	}
	if j.ActualTotal != 0 {
		return j.ActualTotal
	}
	return j.EstimatedTotal
}
