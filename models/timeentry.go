package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Time entry statuses. Approval and payment are independent dimensions:
// status tracks manager review, IsPaid tracks payroll disbursement and only
// toggles while the entry is approved.
const (
	TimeEntryStatusPending  = "pending"
	TimeEntryStatusApproved = "approved"
	TimeEntryStatusRejected = "rejected"
)

// TimeEntry is one employee's worked shift, optionally against a job.
type TimeEntry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;index;not null" json:"employeeId"`
	Employee   *Employee  `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	JobID      *uuid.UUID `gorm:"type:uuid;index" json:"jobId,omitempty"`

	EntryDate    JSONTime  `gorm:"column:entry_date;not null" json:"entryDate"`
	ClockInTime  *JSONTime `json:"clockInTime,omitempty"`
	ClockOutTime *JSONTime `json:"clockOutTime,omitempty"`

	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	HourlyRate    float64 `json:"hourlyRate"`
	// OvertimeRate of zero means "no premium configured": pay falls back to
	// the plain hourly rate for overtime hours.
	OvertimeRate float64 `json:"overtimeRate"`
	// TipAmount is an expense the company pays out to the employee. It is
	// never revenue.
	TipAmount float64 `json:"tipAmount"`
	// TotalPay is derived (finance.TotalPay) and refreshed on every write.
	TotalPay float64 `json:"totalPay"`

	Status       string    `gorm:"size:20;index;not null;default:pending" json:"status"`
	IsPaid       bool      `gorm:"index" json:"isPaid"`
	PaidAt       *JSONTime `json:"paidAt,omitempty"`
	ManagerNotes string    `json:"managerNotes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (te *TimeEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if te.ID == uuid.Nil {
		te.ID = uuid.New()
	}
	return
}

// WorkedHours returns the clocked span in hours, or 0 when either stamp is
// missing. A negative span is left to Validate to reject.
func (te *TimeEntry) WorkedHours() float64 {
	if te.ClockInTime == nil || te.ClockOutTime == nil {
		return 0
	}
	return te.ClockOutTime.Time().Sub(te.ClockInTime.Time()).Hours()
}

// Validate checks a time entry at create/update time.
func (te *TimeEntry) Validate() []string {
	var errs []string
	if te.EmployeeID == uuid.Nil {
		errs = append(errs, "employee is required")
	}
	if te.EntryDate.IsZero() {
		errs = append(errs, "entry date is required")
	}
	if te.RegularHours < 0 {
		errs = append(errs, "regular hours cannot be negative")
	}
	if te.OvertimeHours < 0 {
		errs = append(errs, "overtime hours cannot be negative")
	}
	if te.HourlyRate < 0 {
		errs = append(errs, "hourly rate cannot be negative")
	}
	if te.OvertimeRate < 0 {
		errs = append(errs, "overtime rate cannot be negative")
	}
	if te.TipAmount < 0 {
		errs = append(errs, "tip amount cannot be negative")
	}
	if te.ClockInTime != nil && te.ClockOutTime != nil &&
		te.ClockOutTime.Time().Before(te.ClockInTime.Time()) {
		errs = append(errs, "clock-out time must be after clock-in time")
	}
	return errs
}
