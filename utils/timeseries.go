package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
)

// Grouping periods for the dashboard revenue trend.
const (
	PeriodDay     = "day"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// RevenuePoint is one bucket of the revenue trend chart.
type RevenuePoint struct {
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
	Revenue   float64   `json:"revenue"`
	JobCount  int       `json:"jobCount"`
}

// GroupJobRevenue buckets completed-job revenue by calendar period, keyed on
// the job date. Buckets come back sorted chronologically. Unknown periods
// fall back to daily grouping.
func GroupJobRevenue(jobs []models.Job, period string) []RevenuePoint {
	type bucket struct {
		ts       time.Time
		revenue  float64
		jobCount int
	}
	grouped := make(map[string]*bucket)

	for _, j := range jobs {
		if !j.IsCompleted() {
			continue
		}
		t := j.JobDate.Time()
		key, start := periodKey(t, period)

		b, ok := grouped[key]
		if !ok {
			b = &bucket{ts: start}
			grouped[key] = b
		}
		b.revenue += finance.CompletedRevenue(j)
		b.jobCount++
	}

	out := make([]RevenuePoint, 0, len(grouped))
	for key, b := range grouped {
		out = append(out, RevenuePoint{
			Period:    key,
			Timestamp: b.ts,
			Revenue:   b.revenue,
			JobCount:  b.jobCount,
		})
	}
	sort.Slice(out, func(i, k int) bool {
		return out[i].Timestamp.Before(out[k].Timestamp)
	})
	return out
}

// periodKey returns the bucket label and the bucket's starting instant.
func periodKey(t time.Time, period string) (string, time.Time) {
	switch period {
	case PeriodWeek:
		year, week := t.ISOWeek()
		// Walk back to the ISO week's Monday for the bucket start.
		start := t
		for start.Weekday() != time.Monday {
			start = start.AddDate(0, 0, -1)
		}
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
		return fmt.Sprintf("%d-W%02d", year, week), start
	case PeriodMonth:
		return t.Format("2006-01"), time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case PeriodQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		startMonth := time.Month((quarter-1)*3 + 1)
		return fmt.Sprintf("%d-Q%d", t.Year(), quarter),
			time.Date(t.Year(), startMonth, 1, 0, 0, 0, 0, t.Location())
	case PeriodYear:
		return t.Format("2006"), time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	default:
		return t.Format("2006-01-02"), time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// MovingAverage smooths a revenue trend with a trailing window. Windows
// larger than the series return the series unchanged.
func MovingAverage(points []RevenuePoint, window int) []RevenuePoint {
	if window <= 1 || len(points) < window {
		return points
	}
	out := make([]RevenuePoint, 0, len(points)-window+1)
	for i := window - 1; i < len(points); i++ {
		var sum float64
		for k := i - window + 1; k <= i; k++ {
			sum += points[k].Revenue
		}
		p := points[i]
		p.Revenue = sum / float64(window)
		out = append(out, p)
	}
	return out
}
