package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job statuses. A job's lifecycle status is independent of its payment
// state: IsPaid only ever toggles after the job reaches "completed".
const (
	JobStatusPendingSchedule = "pending_schedule"
	JobStatusScheduled       = "scheduled"
	JobStatusInProgress      = "in_progress"
	JobStatusCompleted       = "completed"
	JobStatusCancelled       = "cancelled"
	JobStatusRescheduled     = "rescheduled"
)

// Pricing models.
const (
	PricingPerPerson = "per_person"
	PricingFlatRate  = "flat_rate"
)

// Payment methods accepted on completion.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentCheck    = "check"
	PaymentTransfer = "transfer"
)

// jobTransitions is the allowed status transition table. "cancelled" is
// reachable from every non-terminal state.
var jobTransitions = map[string][]string{
	JobStatusPendingSchedule: {JobStatusScheduled, JobStatusCancelled},
	JobStatusScheduled:       {JobStatusInProgress, JobStatusRescheduled, JobStatusCancelled},
	JobStatusRescheduled:     {JobStatusScheduled, JobStatusCancelled},
	JobStatusInProgress:      {JobStatusCompleted, JobStatusCancelled},
	JobStatusCompleted:       {},
	JobStatusCancelled:       {},
}

// Job is one moving engagement, from intake through completion and payment.
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobNumber string    `gorm:"size:32;uniqueIndex;not null" json:"jobNumber"`

	// Client linkage. ClientID is nullable for walk-ins; the name/phone/email
	// below are a denormalized copy taken at booking time so the job record
	// keeps displaying what was agreed even if the client row is edited later.
	ClientID    *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	Client      *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ClientName  string     `gorm:"size:100;not null" json:"clientName"`
	ClientPhone string     `gorm:"size:20" json:"clientPhone"`
	ClientEmail string     `gorm:"size:100" json:"clientEmail"`

	// Lead provenance. Weak back-reference kept for marketing attribution;
	// deleting the lead is forbidden once converted, so this stays resolvable.
	LeadID *uuid.UUID `gorm:"type:uuid;index" json:"leadId,omitempty"`

	// Scheduling.
	JobDate   JSONTime `gorm:"column:job_date;not null" json:"jobDate"`
	StartTime string   `gorm:"size:8" json:"startTime"`
	Status    string   `gorm:"size:20;index;not null;default:pending_schedule" json:"status"`

	// Addresses and the derived move distance (miles, straight-line estimate).
	OriginAddress      string   `gorm:"size:255" json:"originAddress"`
	DestinationAddress string   `gorm:"size:255" json:"destinationAddress"`
	OriginLat          *float64 `json:"originLat,omitempty"`
	OriginLng          *float64 `json:"originLng,omitempty"`
	DestinationLat     *float64 `json:"destinationLat,omitempty"`
	DestinationLng     *float64 `json:"destinationLng,omitempty"`
	DistanceMiles      float64  `json:"distanceMiles"`

	// Pricing. PricingModel selects which of the field groups below applies.
	PricingModel     string  `gorm:"size:20;not null;default:per_person" json:"pricingModel"`
	HourlyRate       float64 `json:"hourlyRate"`
	MoversNeeded     int     `json:"moversNeeded"`
	FlatHourlyRate   float64 `json:"flatHourlyRate"`
	WorkerHourlyRate float64 `json:"workerHourlyRate"`
	HoursWorked      float64 `json:"hoursWorked"`

	EstimatedTotal      float64 `json:"estimatedTotal"`
	ActualTotal         float64 `json:"actualTotal"`
	TotalAmountReceived float64 `json:"totalAmountReceived"`

	// Completion facts.
	ActualDurationHours float64        `json:"actualDurationHours"`
	IsPaid              bool           `gorm:"index" json:"isPaid"`
	PaymentMethod       string         `gorm:"size:20" json:"paymentMethod"`
	PaidAt              *JSONTime      `json:"paidAt,omitempty"`
	CompletionNotes     string         `json:"completionNotes"`
	CompletionPhotos    pq.StringArray `gorm:"type:text[]" json:"completionPhotos"`

	// Optional truck add-on.
	TruckServiceFee float64 `json:"truckServiceFee"`
	TruckRentalCost float64 `json:"truckRentalCost"`
	TruckGasCost    float64 `json:"truckGasCost"`

	// Free-form intake payload: inventory list, access notes, crew ids.
	Inventory datatypes.JSON `gorm:"type:jsonb" json:"inventory,omitempty"`
	CrewIDs   datatypes.JSON `gorm:"type:jsonb" json:"crewIds,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.JobNumber == "" {
		j.JobNumber = NewJobNumber(time.Now())
	}
	return
}

// NewJobNumber builds the human-readable job number shown on the schedule
// board and invoices, e.g. "JOB-20250829-4F21".
func NewJobNumber(now time.Time) string {
	return fmt.Sprintf("JOB-%s-%04X", now.Format("20060102"), rand.Intn(0x10000))
}

// CanTransition reports whether a status change is allowed.
func (j *Job) CanTransition(to string) bool {
	for _, next := range jobTransitions[j.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the job's current
// status, for error messages and for the UI to grey out buttons.
func (j *Job) AllowedTransitions() []string {
	return jobTransitions[j.Status]
}

// IsCompleted reports whether the job has reached its terminal working state.
func (j *Job) IsCompleted() bool { return j.Status == JobStatusCompleted }

// Validate checks a job at create/update time and returns every problem as a
// human-readable message. An empty slice means the record is acceptable.
func (j *Job) Validate() []string {
	var errs []string

	if j.ClientName == "" {
		errs = append(errs, "client name is required")
	}
	if j.JobDate.IsZero() {
		errs = append(errs, "job date is required")
	}

	switch j.PricingModel {
	case PricingPerPerson:
		if j.HourlyRate < 0 {
			errs = append(errs, "hourly rate cannot be negative")
		}
		if j.MoversNeeded <= 0 {
			errs = append(errs, "at least one mover is required")
		}
	case PricingFlatRate:
		if j.FlatHourlyRate < 0 {
			errs = append(errs, "flat hourly rate cannot be negative")
		}
		if j.WorkerHourlyRate < 0 {
			errs = append(errs, "worker hourly rate cannot be negative")
		}
		if j.HoursWorked < 0 {
			errs = append(errs, "hours worked cannot be negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown pricing model %q", j.PricingModel))
	}

	if j.ActualDurationHours < 0 {
		errs = append(errs, "actual duration cannot be negative")
	}
	if j.TruckServiceFee < 0 || j.TruckRentalCost < 0 || j.TruckGasCost < 0 {
		errs = append(errs, "truck amounts cannot be negative")
	}
	return errs
}
