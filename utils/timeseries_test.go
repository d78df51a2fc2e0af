package utils

import (
	"testing"
	"time"

	"github.com/atlasmoves/moveops/models"
)

func jobOn(date string, actual float64) models.Job {
	t, _ := time.Parse("2006-01-02", date)
	return models.Job{
		Status:      models.JobStatusCompleted,
		JobDate:     models.JSONTime(t),
		ActualTotal: actual,
	}
}

func TestGroupJobRevenueByMonth(t *testing.T) {
	jobs := []models.Job{
		jobOn("2025-06-03", 500),
		jobOn("2025-06-21", 700),
		jobOn("2025-07-02", 900),
	}
	// Non-completed jobs are ignored regardless of date.
	pending := jobOn("2025-06-10", 9999)
	pending.Status = models.JobStatusScheduled
	jobs = append(jobs, pending)

	points := GroupJobRevenue(jobs, PeriodMonth)
	if len(points) != 2 {
		t.Fatalf("got %d buckets, expected 2", len(points))
	}
	if points[0].Period != "2025-06" || points[0].Revenue != 1200 || points[0].JobCount != 2 {
		t.Errorf("june bucket = %+v", points[0])
	}
	if points[1].Period != "2025-07" || points[1].Revenue != 900 {
		t.Errorf("july bucket = %+v", points[1])
	}
	if !points[0].Timestamp.Before(points[1].Timestamp) {
		t.Error("buckets are not chronological")
	}
}

func TestGroupJobRevenuePeriodKeys(t *testing.T) {
	jobs := []models.Job{jobOn("2025-05-16", 100)}

	tests := []struct {
		period string
		key    string
	}{
		{PeriodDay, "2025-05-16"},
		{PeriodWeek, "2025-W20"},
		{PeriodMonth, "2025-05"},
		{PeriodQuarter, "2025-Q2"},
		{PeriodYear, "2025"},
		{"bogus", "2025-05-16"},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			points := GroupJobRevenue(jobs, tt.period)
			if len(points) != 1 || points[0].Period != tt.key {
				t.Errorf("period %q: got %+v, expected key %q", tt.period, points, tt.key)
			}
		})
	}
}

func TestMovingAverage(t *testing.T) {
	points := []RevenuePoint{
		{Revenue: 100}, {Revenue: 200}, {Revenue: 300}, {Revenue: 400},
	}
	smoothed := MovingAverage(points, 2)
	if len(smoothed) != 3 {
		t.Fatalf("got %d points, expected 3", len(smoothed))
	}
	for i, want := range []float64{150, 250, 350} {
		if smoothed[i].Revenue != want {
			t.Errorf("point %d = %v, expected %v", i, smoothed[i].Revenue, want)
		}
	}

	// Window larger than the series is a no-op.
	if got := MovingAverage(points, 10); len(got) != len(points) {
		t.Errorf("oversized window changed the series: %d points", len(got))
	}
}

func TestMoveDistanceMiles(t *testing.T) {
	nycLat, nycLng := 40.7128, -74.0060
	phillyLat, phillyLng := 39.9526, -75.1652

	miles := MoveDistanceMiles(&nycLat, &nycLng, &phillyLat, &phillyLng)
	if miles < 75 || miles > 85 {
		t.Errorf("NYC-Philadelphia = %.1f miles, expected roughly 80", miles)
	}

	if got := MoveDistanceMiles(nil, &nycLng, &phillyLat, &phillyLng); got != 0 {
		t.Errorf("missing endpoint should yield 0, got %v", got)
	}
}
