package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/atlasmoves/moveops/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeValidationErrors returns every validation failure at once so the form
// can show the full list, matching how the dashboard surfaces them.
func writeValidationErrors(w http.ResponseWriter, errs []string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"errors": errs,
	})
}

// parseDateRange reads optional from/to query params (YYYY-MM-DD). A missing
// bound leaves the corresponding time zero, meaning unbounded.
func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	if s := r.URL.Query().Get("from"); s != "" {
		from, err = time.Parse("2006-01-02", s)
		if err != nil {
			return
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		to, err = time.Parse("2006-01-02", s)
		if err != nil {
			return
		}
		// Inclusive upper bound: the whole "to" day counts.
		to = to.AddDate(0, 0, 1)
	}
	return
}

// jobView decorates a job with its derived profit figures for responses.
// Profit is only meaningful after completion; the Computed flag carries that.
type jobView struct {
	models.Job
	JobProfit   interface{} `json:"jobProfit,omitempty"`
	TruckProfit *float64    `json:"truckProfit,omitempty"`
}
