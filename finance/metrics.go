package finance

import (
	"sort"

	"github.com/google/uuid"

	"github.com/atlasmoves/moveops/models"
)

// Metrics is the headline financial record shown on the dashboard,
// financials page, and report exports. Every figure comes out of Compute;
// no view recomputes its own version.
type Metrics struct {
	PaidRevenue   float64 `json:"paidRevenue"`
	UnpaidRevenue float64 `json:"unpaidRevenue"`
	TotalLeadCost float64 `json:"totalLeadCost"`
	PayrollCost   float64 `json:"payrollCost"`
	GrossProfit   float64 `json:"grossProfit"`
	ProfitMargin  float64 `json:"profitMargin"`

	ConversionRate  float64 `json:"conversionRate"`
	AverageJobValue float64 `json:"averageJobValue"`

	CompletedJobCount int `json:"completedJobCount"`
	PaidJobCount      int `json:"paidJobCount"`
	TotalLeadCount    int `json:"totalLeadCount"`
	ConvertedLeads    int `json:"convertedLeads"`
}

// Compute folds the supplied collections into one consistent Metrics record.
// Callers pass collections already filtered to the view's date range; lead
// cost is intentionally summed over every supplied lead, since acquisition
// spend happens at creation regardless of conversion.
//
// Eligibility rules:
//   - paid revenue: completed jobs with IsPaid, by actual total
//   - unpaid revenue: completed jobs without IsPaid, actual total falling
//     back to the estimate when no actual was recorded
//   - payroll cost: time entries with IsPaid (payment is the authoritative
//     gate; approval is a prerequisite of payment, not the filter here)
func Compute(jobs []models.Job, leads []models.Lead, entries []models.TimeEntry) Metrics {
	var m Metrics

	for _, j := range jobs {
		if !j.IsCompleted() {
			continue
		}
		m.CompletedJobCount++
		if j.IsPaid {
			m.PaidJobCount++
			m.PaidRevenue += j.ActualTotal
		} else {
			if j.ActualTotal != 0 {
				m.UnpaidRevenue += j.ActualTotal
			} else {
				m.UnpaidRevenue += j.EstimatedTotal
			}
		}
	}

	for _, l := range leads {
		m.TotalLeadCount++
		m.TotalLeadCost += l.LeadCost
		if l.Status == models.LeadStatusConverted {
			m.ConvertedLeads++
		}
	}

	for _, e := range entries {
		if e.IsPaid {
			m.PayrollCost += TotalPay(e)
		}
	}

	m.GrossProfit = m.PaidRevenue - m.PayrollCost - m.TotalLeadCost
	if m.PaidRevenue != 0 {
		m.ProfitMargin = m.GrossProfit / m.PaidRevenue * 100
	}
	if m.TotalLeadCount != 0 {
		m.ConversionRate = float64(m.ConvertedLeads) / float64(m.TotalLeadCount) * 100
	}
	if m.PaidJobCount != 0 {
		m.AverageJobValue = m.PaidRevenue / float64(m.PaidJobCount)
	}
	return m
}

// DirectSource is the attribution bucket for jobs booked without a lead.
const DirectSource = "direct"

// SourceMetrics is one row of the revenue-by-source breakdown.
type SourceMetrics struct {
	Source         string  `json:"source"`
	Revenue        float64 `json:"revenue"`
	JobCount       int     `json:"jobCount"`
	LeadCount      int     `json:"leadCount"`
	ConversionRate float64 `json:"conversionRate"`
}

// RevenueBySource attributes completed-job revenue to the lead source that
// produced each job. Jobs without a lead fall into the "direct" bucket.
// Per-bucket conversion is jobs over leads, zero when a bucket has no leads.
func RevenueBySource(jobs []models.Job, leads []models.Lead) []SourceMetrics {
	sourceByLead := make(map[uuid.UUID]string, len(leads))
	buckets := make(map[string]*SourceMetrics)

	bucket := func(source string) *SourceMetrics {
		b, ok := buckets[source]
		if !ok {
			b = &SourceMetrics{Source: source}
			buckets[source] = b
		}
		return b
	}

	for _, l := range leads {
		sourceByLead[l.ID] = l.Source
		bucket(l.Source).LeadCount++
	}

	for _, j := range jobs {
		source := DirectSource
		if j.LeadID != nil {
			if s, ok := sourceByLead[*j.LeadID]; ok {
				source = s
			}
		}
		b := bucket(source)
		b.JobCount++
		b.Revenue += CompletedRevenue(j)
	}

	out := make([]SourceMetrics, 0, len(buckets))
	for _, b := range buckets {
		if b.LeadCount != 0 {
			b.ConversionRate = float64(b.JobCount) / float64(b.LeadCount) * 100
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Revenue != out[k].Revenue {
			return out[i].Revenue > out[k].Revenue
		}
		return out[i].Source < out[k].Source
	})
	return out
}

// ClientRevenue is one row of the revenue-by-client breakdown.
type ClientRevenue struct {
	ClientID   *uuid.UUID `json:"clientId,omitempty"`
	ClientName string     `json:"clientName"`
	Revenue    float64    `json:"revenue"`
	JobCount   int        `json:"jobCount"`
}

// RevenueByClient groups completed-job revenue per client. Jobs are keyed by
// client id so two clients sharing a name stay separate; only walk-ins with
// no client record group by the denormalized name.
func RevenueByClient(jobs []models.Job) []ClientRevenue {
	type key struct {
		id   uuid.UUID
		name string
	}
	buckets := make(map[key]*ClientRevenue)

	for _, j := range jobs {
		if !j.IsCompleted() {
			continue
		}
		k := key{name: j.ClientName}
		if j.ClientID != nil {
			k = key{id: *j.ClientID}
		}
		b, ok := buckets[k]
		if !ok {
			b = &ClientRevenue{ClientID: j.ClientID, ClientName: j.ClientName}
			buckets[k] = b
		}
		b.JobCount++
		b.Revenue += CompletedRevenue(j)
	}

	out := make([]ClientRevenue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Revenue != out[k].Revenue {
			return out[i].Revenue > out[k].Revenue
		}
		return out[i].ClientName < out[k].ClientName
	})
	return out
}

// ClientStats recomputes a client's derived columns from its job history:
// the count of completed jobs and their summed revenue. Stored values that
// disagree with this fold are stale and must be overwritten, never trusted.
func ClientStats(clientID uuid.UUID, jobs []models.Job) (completed int, revenue float64) {
	for _, j := range jobs {
		if j.ClientID == nil || *j.ClientID != clientID || !j.IsCompleted() {
			continue
		}
		completed++
		revenue += CompletedRevenue(j)
	}
	return completed, revenue
}
