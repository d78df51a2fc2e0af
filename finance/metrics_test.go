package finance

import (
	"testing"

	"github.com/google/uuid"

	"github.com/atlasmoves/moveops/models"
)

func completedJob(actual float64, paid bool) models.Job {
	return models.Job{Status: models.JobStatusCompleted, ActualTotal: actual, IsPaid: paid}
}

func TestComputeHeadlineMetrics(t *testing.T) {
	jobs := []models.Job{
		completedJob(6000, true),
		completedJob(4000, true),
		completedJob(1500, false),
		{Status: models.JobStatusScheduled, ActualTotal: 900}, // not counted
		{Status: models.JobStatusCancelled, EstimatedTotal: 500},
	}
	leads := []models.Lead{
		{Status: models.LeadStatusConverted, LeadCost: 300},
		{Status: models.LeadStatusLost, LeadCost: 200},
		{Status: models.LeadStatusNew},
		{Status: models.LeadStatusQuoted},
	}
	entries := []models.TimeEntry{
		{RegularHours: 8, HourlyRate: 20, IsPaid: true, Status: models.TimeEntryStatusApproved},                    // 160
		{RegularHours: 8, OvertimeHours: 2, HourlyRate: 20, OvertimeRate: 30, TipAmount: 15, IsPaid: true},         // 235
		{RegularHours: 8, HourlyRate: 100, IsPaid: false, Status: models.TimeEntryStatusApproved},                  // unpaid, excluded
		{RegularHours: 8, HourlyRate: 100, IsPaid: false, Status: models.TimeEntryStatusPending, TipAmount: 1000},  // excluded
	}

	m := Compute(jobs, leads, entries)

	if m.PaidRevenue != 10000 {
		t.Errorf("PaidRevenue = %v, expected 10000", m.PaidRevenue)
	}
	if m.UnpaidRevenue != 1500 {
		t.Errorf("UnpaidRevenue = %v, expected 1500", m.UnpaidRevenue)
	}
	if m.TotalLeadCost != 500 {
		t.Errorf("TotalLeadCost = %v, expected 500", m.TotalLeadCost)
	}
	if m.PayrollCost != 395 {
		t.Errorf("PayrollCost = %v, expected 395", m.PayrollCost)
	}
	if want := 10000.0 - 395 - 500; m.GrossProfit != want {
		t.Errorf("GrossProfit = %v, expected %v", m.GrossProfit, want)
	}
	if m.ConversionRate != 25 {
		t.Errorf("ConversionRate = %v, expected 25", m.ConversionRate)
	}
	if m.AverageJobValue != 5000 {
		t.Errorf("AverageJobValue = %v, expected 5000", m.AverageJobValue)
	}
	if m.CompletedJobCount != 3 || m.PaidJobCount != 2 {
		t.Errorf("counts = (%d completed, %d paid), expected (3, 2)",
			m.CompletedJobCount, m.PaidJobCount)
	}
}

// Worked example: 10k paid revenue, 4k payroll, 500 lead cost gives 5.5k
// gross profit at a 55% margin.
func TestComputeGrossProfitExample(t *testing.T) {
	jobs := []models.Job{completedJob(10000, true)}
	leads := []models.Lead{{LeadCost: 500}}
	entries := []models.TimeEntry{{RegularHours: 8, HourlyRate: 500, IsPaid: true}} // 4000

	m := Compute(jobs, leads, entries)
	if m.GrossProfit != 5500 {
		t.Errorf("GrossProfit = %v, expected 5500", m.GrossProfit)
	}
	if m.ProfitMargin != 55 {
		t.Errorf("ProfitMargin = %v, expected 55", m.ProfitMargin)
	}
}

// Every completed job lands in exactly one of the two revenue buckets.
func TestComputeRevenuePartition(t *testing.T) {
	jobs := []models.Job{
		completedJob(1200, true),
		completedJob(800, false),
		completedJob(2500, true),
		completedJob(450, false),
		{Status: models.JobStatusInProgress, ActualTotal: 999},
	}

	var allCompleted float64
	for _, j := range jobs {
		if j.IsCompleted() {
			allCompleted += j.ActualTotal
		}
	}

	m := Compute(jobs, nil, nil)
	if m.PaidRevenue+m.UnpaidRevenue != allCompleted {
		t.Errorf("paid %v + unpaid %v = %v, expected %v",
			m.PaidRevenue, m.UnpaidRevenue, m.PaidRevenue+m.UnpaidRevenue, allCompleted)
	}
}

// Empty inputs must produce zeros, never NaN or Inf.
func TestComputeZeroDenominators(t *testing.T) {
	m := Compute(nil, nil, nil)
	if m.ProfitMargin != 0 {
		t.Errorf("ProfitMargin = %v, expected 0", m.ProfitMargin)
	}
	if m.ConversionRate != 0 {
		t.Errorf("ConversionRate = %v, expected 0", m.ConversionRate)
	}
	if m.AverageJobValue != 0 {
		t.Errorf("AverageJobValue = %v, expected 0", m.AverageJobValue)
	}
}

func TestRevenueBySource(t *testing.T) {
	adsLead := models.Lead{ID: uuid.New(), Source: models.LeadSourceGoogleAds, Status: models.LeadStatusConverted}
	referralLead := models.Lead{ID: uuid.New(), Source: models.LeadSourceReferral, Status: models.LeadStatusLost}
	leads := []models.Lead{adsLead, referralLead}

	jobs := []models.Job{
		{Status: models.JobStatusCompleted, ActualTotal: 2000, LeadID: &adsLead.ID},
		{Status: models.JobStatusCompleted, ActualTotal: 1000}, // no lead: direct
		{Status: models.JobStatusScheduled, LeadID: &adsLead.ID},
	}

	rows := RevenueBySource(jobs, leads)

	bySource := make(map[string]SourceMetrics, len(rows))
	for _, row := range rows {
		bySource[row.Source] = row
	}

	ads := bySource[models.LeadSourceGoogleAds]
	if ads.Revenue != 2000 || ads.JobCount != 2 || ads.LeadCount != 1 {
		t.Errorf("google_ads bucket = %+v", ads)
	}
	if ads.ConversionRate != 200 { // 2 jobs / 1 lead
		t.Errorf("google_ads conversion = %v, expected 200", ads.ConversionRate)
	}

	direct := bySource[DirectSource]
	if direct.Revenue != 1000 || direct.JobCount != 1 || direct.LeadCount != 0 {
		t.Errorf("direct bucket = %+v", direct)
	}
	if direct.ConversionRate != 0 {
		t.Errorf("direct conversion = %v, expected 0 with no leads", direct.ConversionRate)
	}

	referral := bySource[models.LeadSourceReferral]
	if referral.LeadCount != 1 || referral.JobCount != 0 || referral.Revenue != 0 {
		t.Errorf("referral bucket = %+v", referral)
	}
}

func TestRevenueByClientGroupsByID(t *testing.T) {
	smithA := uuid.New()
	smithB := uuid.New()

	jobs := []models.Job{
		{Status: models.JobStatusCompleted, ClientID: &smithA, ClientName: "J. Smith", ActualTotal: 900},
		{Status: models.JobStatusCompleted, ClientID: &smithB, ClientName: "J. Smith", ActualTotal: 400},
		{Status: models.JobStatusCompleted, ClientName: "Walk-in", ActualTotal: 150},
		{Status: models.JobStatusCompleted, ClientName: "Walk-in", ActualTotal: 250},
	}

	rows := RevenueByClient(jobs)
	if len(rows) != 3 {
		t.Fatalf("got %d buckets, expected 3 (same-name clients must not merge)", len(rows))
	}
	// Sorted by revenue descending.
	if rows[0].Revenue != 900 || rows[1].Revenue != 400 || rows[2].Revenue != 400 {
		t.Errorf("revenues = %v, %v, %v", rows[0].Revenue, rows[1].Revenue, rows[2].Revenue)
	}
	if rows[2].ClientName != "Walk-in" || rows[2].JobCount != 2 {
		t.Errorf("walk-in bucket = %+v", rows[2])
	}
}

func TestClientStats(t *testing.T) {
	clientID := uuid.New()
	otherID := uuid.New()

	jobs := []models.Job{
		{Status: models.JobStatusCompleted, ClientID: &clientID, ActualTotal: 1000},
		{Status: models.JobStatusCompleted, ClientID: &clientID, EstimatedTotal: 500}, // fallback
		{Status: models.JobStatusScheduled, ClientID: &clientID, EstimatedTotal: 800},
		{Status: models.JobStatusCompleted, ClientID: &otherID, ActualTotal: 9999},
		{Status: models.JobStatusCompleted, ActualTotal: 50}, // walk-in, no client
	}

	completed, revenue := ClientStats(clientID, jobs)
	if completed != 2 {
		t.Errorf("completed = %d, expected 2", completed)
	}
	if revenue != 1500 {
		t.Errorf("revenue = %v, expected 1500", revenue)
	}
}

func BenchmarkCompute(b *testing.B) {
	jobs := make([]models.Job, 500)
	for i := range jobs {
		jobs[i] = completedJob(float64(100+i), i%3 != 0)
	}
	leads := make([]models.Lead, 200)
	for i := range leads {
		leads[i] = models.Lead{LeadCost: 10}
	}
	entries := make([]models.TimeEntry, 300)
	for i := range entries {
		entries[i] = models.TimeEntry{RegularHours: 8, HourlyRate: 20, IsPaid: i%2 == 0}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(jobs, leads, entries)
	}
}
