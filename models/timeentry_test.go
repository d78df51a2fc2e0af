package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func stamp(hour, min int) *JSONTime {
	t := JSONTime(time.Date(2025, 8, 20, hour, min, 0, 0, time.UTC))
	return &t
}

func TestTimeEntryWorkedHours(t *testing.T) {
	tests := []struct {
		name  string
		entry TimeEntry
		want  float64
	}{
		{
			name:  "normal shift",
			entry: TimeEntry{ClockInTime: stamp(8, 0), ClockOutTime: stamp(16, 30)},
			want:  8.5,
		},
		{
			name:  "missing clock out",
			entry: TimeEntry{ClockInTime: stamp(8, 0)},
			want:  0,
		},
		{
			name:  "no stamps at all",
			entry: TimeEntry{},
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.WorkedHours(); got != tt.want {
				t.Errorf("WorkedHours() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestTimeEntryValidate(t *testing.T) {
	employee := Employee{ID: uuid.New()}
	date := JSONTime(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		entry    TimeEntry
		wantErrs int
	}{
		{
			name: "valid entry",
			entry: TimeEntry{
				EmployeeID: employee.ID, EntryDate: date,
				RegularHours: 8, HourlyRate: 20,
			},
			wantErrs: 0,
		},
		{
			name: "clock out before clock in",
			entry: TimeEntry{
				EmployeeID: employee.ID, EntryDate: date,
				ClockInTime: stamp(16, 0), ClockOutTime: stamp(8, 0),
			},
			wantErrs: 1,
		},
		{
			name: "negative amounts each reported",
			entry: TimeEntry{
				EmployeeID: employee.ID, EntryDate: date,
				RegularHours: -1, OvertimeHours: -1, HourlyRate: -1,
				OvertimeRate: -1, TipAmount: -1,
			},
			wantErrs: 5,
		},
		{
			name:     "missing employee and date",
			entry:    TimeEntry{},
			wantErrs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.entry.Validate()
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() returned %d errors (%v), expected %d",
					len(errs), errs, tt.wantErrs)
			}
		})
	}
}

func TestEmployeeEffectiveOvertimeRate(t *testing.T) {
	withRate := Employee{HourlyWage: 20, OvertimeRate: 32}
	if got := withRate.EffectiveOvertimeRate(); got != 32 {
		t.Errorf("explicit rate: got %v, expected 32", got)
	}
	withoutRate := Employee{HourlyWage: 20}
	if got := withoutRate.EffectiveOvertimeRate(); got != 30 {
		t.Errorf("default rate: got %v, expected 30 (1.5x wage)", got)
	}
}
