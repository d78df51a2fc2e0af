package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee statuses.
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusInactive   = "inactive"
	EmployeeStatusTerminated = "terminated"
	EmployeeStatusOnLeave    = "on_leave"
)

// Employee roles.
const (
	EmployeeRoleMover   = "mover"
	EmployeeRoleDriver  = "driver"
	EmployeeRoleForeman = "foreman"
	EmployeeRoleOffice  = "office"
)

// Employee is a crew member whose shifts are tracked as time entries.
type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Phone    string    `gorm:"size:20;uniqueIndex" json:"phone"`
	Email    string    `gorm:"size:100" json:"email"`
	Role     string    `gorm:"size:20;not null;default:mover" json:"role"`
	Status   string    `gorm:"size:20;index;not null;default:active" json:"status"`
	HireDate *JSONTime `json:"hireDate,omitempty"`

	HourlyWage float64 `json:"hourlyWage"`
	// OvertimeRate defaults to 1.5x the hourly wage when left at zero.
	OvertimeRate float64 `json:"overtimeRate"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// EffectiveOvertimeRate returns the configured overtime rate, or the
// 1.5x-wage default when none is set.
func (e *Employee) EffectiveOvertimeRate() float64 {
	if e.OvertimeRate > 0 {
		return e.OvertimeRate
	}
	return e.HourlyWage * 1.5
}

// Validate checks an employee at create/update time.
func (e *Employee) Validate() []string {
	var errs []string
	if e.Name == "" {
		errs = append(errs, "employee name is required")
	}
	if e.HourlyWage < 0 {
		errs = append(errs, "hourly wage cannot be negative")
	}
	if e.OvertimeRate < 0 {
		errs = append(errs, "overtime rate cannot be negative")
	}
	return errs
}
