package models

import "testing"

func TestLeadTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"new to contacted", LeadStatusNew, LeadStatusContacted, true},
		{"new to lost", LeadStatusNew, LeadStatusLost, true},
		{"new cannot skip to quoted", LeadStatusNew, LeadStatusQuoted, false},
		{"new cannot convert directly", LeadStatusNew, LeadStatusConverted, false},
		{"contacted to quoted", LeadStatusContacted, LeadStatusQuoted, true},
		{"contacted to lost", LeadStatusContacted, LeadStatusLost, true},
		{"quoted to converted", LeadStatusQuoted, LeadStatusConverted, true},
		{"quoted to lost", LeadStatusQuoted, LeadStatusLost, true},
		{"lost revived to new", LeadStatusLost, LeadStatusNew, true},
		{"lost revived to contacted", LeadStatusLost, LeadStatusContacted, true},
		{"lost cannot jump to converted", LeadStatusLost, LeadStatusConverted, false},
		{"converted can be written off", LeadStatusConverted, LeadStatusLost, true},
		{"converted cannot go back to quoted", LeadStatusConverted, LeadStatusQuoted, false},
		{"no self transition", LeadStatusNew, LeadStatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Lead{Status: tt.from}
			if got := l.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%q -> %q) = %v, expected %v",
					tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestLeadValidate(t *testing.T) {
	tests := []struct {
		name     string
		lead     Lead
		wantErrs int
	}{
		{
			name:     "valid lead",
			lead:     Lead{Name: "A. Morales", Phone: "555-0142", Source: LeadSourceWebsite},
			wantErrs: 0,
		},
		{
			name:     "email alone satisfies contact requirement",
			lead:     Lead{Name: "B. Osei", Email: "b@example.com", Source: LeadSourceReferral},
			wantErrs: 0,
		},
		{
			name:     "missing name and contact",
			lead:     Lead{Source: LeadSourcePhone},
			wantErrs: 2,
		},
		{
			name:     "unknown source",
			lead:     Lead{Name: "C. Ruiz", Phone: "555-0100", Source: "carrier_pigeon"},
			wantErrs: 1,
		},
		{
			name:     "negative amounts",
			lead:     Lead{Name: "D. Khan", Phone: "555-0101", Source: LeadSourceOther, LeadCost: -5, EstimatedValue: -100},
			wantErrs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.lead.Validate()
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() returned %d errors (%v), expected %d",
					len(errs), errs, tt.wantErrs)
			}
		})
	}
}
