package handlers

import (
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/atlasmoves/moveops/config"
	"github.com/atlasmoves/moveops/finance"
	"github.com/atlasmoves/moveops/models"
	"github.com/atlasmoves/moveops/utils"
)

// rangedCollections loads the jobs, leads, and time entries inside the
// requested date range. Jobs filter on job_date, entries on entry_date,
// leads on created_at, since those are the dates each record is booked
// against.
func rangedCollections(r *http.Request) ([]models.Job, []models.Lead, []models.TimeEntry, error) {
	from, to, err := parseDateRange(r)
	if err != nil {
		return nil, nil, nil, err
	}
	ranged := func(q *gorm.DB, column string) *gorm.DB {
		if !from.IsZero() {
			q = q.Where(column+" >= ?", from)
		}
		if !to.IsZero() {
			q = q.Where(column+" < ?", to)
		}
		return q
	}

	var jobs []models.Job
	if err := ranged(config.DB.Model(&models.Job{}), "job_date").Find(&jobs).Error; err != nil {
		return nil, nil, nil, err
	}
	var leads []models.Lead
	if err := ranged(config.DB.Model(&models.Lead{}), "created_at").Find(&leads).Error; err != nil {
		return nil, nil, nil, err
	}
	var entries []models.TimeEntry
	if err := ranged(config.DB.Model(&models.TimeEntry{}).Preload("Employee"), "entry_date").Find(&entries).Error; err != nil {
		return nil, nil, nil, err
	}
	return jobs, leads, entries, nil
}

// GetDashboardMetrics returns the headline financial figures for the
// requested date range.
func GetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	jobs, leads, entries, err := rangedCollections(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, finance.Compute(jobs, leads, entries))
}

func GetRevenueBySource(w http.ResponseWriter, r *http.Request) {
	jobs, leads, _, err := rangedCollections(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, finance.RevenueBySource(jobs, leads))
}

func GetRevenueByClient(w http.ResponseWriter, r *http.Request) {
	jobs, _, _, err := rangedCollections(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, finance.RevenueByClient(jobs))
}

// GetRevenueTrend returns the revenue time series for the chart. Optional
// smoothing via ?window=N applies a trailing moving average.
func GetRevenueTrend(w http.ResponseWriter, r *http.Request) {
	jobs, _, _, err := rangedCollections(r)
	if err != nil {
		http.Error(w, "invalid date filter, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = utils.PeriodMonth
	}
	points := utils.GroupJobRevenue(jobs, period)

	if windowStr := r.URL.Query().Get("window"); windowStr != "" {
		window, err := strconv.Atoi(windowStr)
		if err != nil || window < 1 {
			http.Error(w, "window must be a positive integer", http.StatusBadRequest)
			return
		}
		points = utils.MovingAverage(points, window)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"period": period,
		"points": points,
	})
}
