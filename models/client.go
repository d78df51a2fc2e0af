package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a billing entity, one-to-many with jobs.
//
// TotalJobsCompleted and TotalRevenue are derived columns, not authoritative:
// they are a cache refreshed from the Job table (finance.ClientStats) after
// job writes, and every read recomputes them before responding. A stored
// value that disagrees with the fold over completed jobs is stale, never
// truth.
type Client struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null;index" json:"name"`
	Phone          string    `gorm:"size:20;index" json:"phone"`
	Email          string    `gorm:"size:100" json:"email"`
	PrimaryAddress string    `gorm:"size:255" json:"primaryAddress"`
	CompanyName    string    `gorm:"size:100" json:"companyName"`

	TotalJobsCompleted int     `json:"totalJobsCompleted"`
	TotalRevenue       float64 `json:"totalRevenue"`

	Jobs []Job `gorm:"foreignKey:ClientID" json:"jobs,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Validate checks a client at create/update time.
func (c *Client) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "client name is required")
	}
	if c.Phone == "" && c.Email == "" {
		errs = append(errs, "a phone number or email is required")
	}
	return errs
}
