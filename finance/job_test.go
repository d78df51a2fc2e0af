package finance

import (
	"testing"

	"github.com/atlasmoves/moveops/models"
)

func TestEstimatedTotal(t *testing.T) {
	tests := []struct {
		name     string
		job      models.Job
		expected float64
	}{
		{
			name: "per-person uses the two-hour minimum",
			job: models.Job{
				PricingModel: models.PricingPerPerson,
				HourlyRate:   50, MoversNeeded: 2,
			},
			expected: 200, // 50 * 2 movers * 2h floor
		},
		{
			name: "per-person single mover",
			job: models.Job{
				PricingModel: models.PricingPerPerson,
				HourlyRate:   65, MoversNeeded: 1,
			},
			expected: 130,
		},
		{
			name: "flat rate multiplies agreed hours",
			job: models.Job{
				PricingModel:   models.PricingFlatRate,
				FlatHourlyRate: 120, HoursWorked: 4,
			},
			expected: 480,
		},
		{
			name:     "unknown pricing model estimates zero",
			job:      models.Job{PricingModel: "hourly"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimatedTotal(tt.job); got != tt.expected {
				t.Errorf("EstimatedTotal() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFlatRateLaborCost(t *testing.T) {
	j := models.Job{
		PricingModel:     models.PricingFlatRate,
		WorkerHourlyRate: 25, MoversNeeded: 3, HoursWorked: 4,
	}
	if got := FlatRateLaborCost(j); got != 300 {
		t.Errorf("FlatRateLaborCost() = %v, expected 300", got)
	}
}

func TestJobProfit(t *testing.T) {
	tests := []struct {
		name string
		job  models.Job
		want JobProfitResult
	}{
		{
			name: "no overtime, crew within the daily ceiling",
			job: models.Job{
				Status:       models.JobStatusCompleted,
				PricingModel: models.PricingPerPerson,
				MoversNeeded: 2, ActualDurationHours: 6,
				WorkerHourlyRate: 20, ActualTotal: 600,
				TruckRentalCost: 80, TruckGasCost: 40,
			},
			want: JobProfitResult{
				RegularLaborCost:  240, // 12 aggregate hours * 20
				OvertimeLaborCost: 0,
				TruckRentalCost:   80,
				TruckGasCost:      40,
				Profit:            240, // 600 - 240 - 80 - 40
				Computed:          true,
			},
		},
		{
			name: "aggregate hours past 8 x movers become overtime at 1.5x",
			job: models.Job{
				Status:       models.JobStatusCompleted,
				PricingModel: models.PricingPerPerson,
				MoversNeeded: 2, ActualDurationHours: 10,
				WorkerHourlyRate: 20, ActualTotal: 1200,
			},
			want: JobProfitResult{
				RegularLaborCost:  320, // 16h regular cap * 20
				OvertimeLaborCost: 120, // 4h overtime * 20 * 1.5
				Profit:            760, // 1200 - 320 - 120
				Computed:          true,
			},
		},
		{
			name: "profit undefined until completion",
			job: models.Job{
				Status:       models.JobStatusInProgress,
				PricingModel: models.PricingPerPerson,
				MoversNeeded: 2, WorkerHourlyRate: 20,
			},
			want: JobProfitResult{},
		},
		{
			name: "flat-rate jobs are out of scope for per-job profit",
			job: models.Job{
				Status:       models.JobStatusCompleted,
				PricingModel: models.PricingFlatRate,
				ActualTotal:  500,
			},
			want: JobProfitResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JobProfit(tt.job)
			if got != tt.want {
				t.Errorf("JobProfit() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestTruckProfit(t *testing.T) {
	j := models.Job{TruckServiceFee: 200, TruckRentalCost: 80, TruckGasCost: 45}
	if got := TruckProfit(j); got != 75 {
		t.Errorf("TruckProfit() = %v, expected 75", got)
	}
	if got := TruckProfit(models.Job{}); got != 0 {
		t.Errorf("TruckProfit(zero job) = %v, expected 0", got)
	}
}

func TestCompletedRevenue(t *testing.T) {
	tests := []struct {
		name     string
		job      models.Job
		expected float64
	}{
		{
			name:     "actual total wins",
			job:      models.Job{Status: models.JobStatusCompleted, ActualTotal: 750, EstimatedTotal: 600},
			expected: 750,
		},
		{
			name:     "estimate fallback when no actual recorded",
			job:      models.Job{Status: models.JobStatusCompleted, EstimatedTotal: 600},
			expected: 600,
		},
		{
			name:     "non-completed jobs contribute nothing",
			job:      models.Job{Status: models.JobStatusScheduled, ActualTotal: 750, EstimatedTotal: 600},
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletedRevenue(tt.job); got != tt.expected {
				t.Errorf("CompletedRevenue() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
