package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{
			name: "no params",
			url:  "/api/v1/jobs",
		},
		{
			name:     "both bounds",
			url:      "/api/v1/jobs?from=2025-01-01&to=2025-01-31",
			wantFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			// inclusive upper bound rolls to the next day
			wantTo: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "from only",
			url:      "/api/v1/jobs?from=2025-06-15",
			wantFrom: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "bad format",
			url:     "/api/v1/jobs?from=01/02/2025",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			from, to, err := parseDateRange(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDateRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !from.Equal(tt.wantFrom) {
				t.Errorf("from = %v, expected %v", from, tt.wantFrom)
			}
			if !to.Equal(tt.wantTo) {
				t.Errorf("to = %v, expected %v", to, tt.wantTo)
			}
		})
	}
}

func TestWriteValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeValidationErrors(rec, []string{"client name is required", "job date is required"})

	if rec.Code != 422 {
		t.Errorf("status = %d, expected 422", rec.Code)
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(body.Errors) != 2 {
		t.Errorf("errors = %v, expected 2 entries", body.Errors)
	}
}
