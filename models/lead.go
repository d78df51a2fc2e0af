package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lead statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQuoted    = "quoted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead sources, used for marketing ROI attribution on the dashboard.
const (
	LeadSourceWebsite   = "website"
	LeadSourceReferral  = "referral"
	LeadSourceGoogleAds = "google_ads"
	LeadSourceFacebook  = "facebook"
	LeadSourcePhone     = "phone"
	LeadSourceWalkIn    = "walk_in"
	LeadSourceOther     = "other"
)

// LeadSources lists every accepted source value.
var LeadSources = []string{
	LeadSourceWebsite, LeadSourceReferral, LeadSourceGoogleAds,
	LeadSourceFacebook, LeadSourcePhone, LeadSourceWalkIn, LeadSourceOther,
}

// leadTransitions is the allowed status transition table. It is deliberately
// not a clean DAG: sales can revive a lost lead, and a converted lead can
// still be written off if the booked job falls through.
var leadTransitions = map[string][]string{
	LeadStatusNew:       {LeadStatusContacted, LeadStatusLost},
	LeadStatusContacted: {LeadStatusQuoted, LeadStatusLost},
	LeadStatusQuoted:    {LeadStatusConverted, LeadStatusLost},
	LeadStatusLost:      {LeadStatusNew, LeadStatusContacted},
	LeadStatusConverted: {LeadStatusLost},
}

// Lead is a sales inquiry, pre-client. Converted leads are never deleted;
// they remain for revenue-by-source attribution.
type Lead struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string    `gorm:"size:100;not null" json:"name"`
	Phone  string    `gorm:"size:20;index" json:"phone"`
	Email  string    `gorm:"size:100" json:"email"`
	Source string    `gorm:"size:20;index;not null;default:other" json:"source"`
	Status string    `gorm:"size:20;index;not null;default:new" json:"status"`

	// LeadCost is acquisition spend (an expense incurred at creation,
	// regardless of whether the lead ever converts).
	LeadCost       float64 `json:"leadCost"`
	EstimatedValue float64 `json:"estimatedValue"`

	Notes        string         `json:"notes"`
	FollowUpDate *JSONTime      `json:"followUpDate,omitempty"`
	ConvertedAt  *JSONTime      `json:"convertedAt,omitempty"`
	Details      datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// CanTransition reports whether a status change is allowed.
func (l *Lead) CanTransition(to string) bool {
	for _, next := range leadTransitions[l.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the current one.
func (l *Lead) AllowedTransitions() []string {
	return leadTransitions[l.Status]
}

// Validate checks a lead at create/update time.
func (l *Lead) Validate() []string {
	var errs []string
	if l.Name == "" {
		errs = append(errs, "lead name is required")
	}
	if l.Phone == "" && l.Email == "" {
		errs = append(errs, "a phone number or email is required")
	}
	if !validLeadSource(l.Source) {
		errs = append(errs, fmt.Sprintf("unknown lead source %q", l.Source))
	}
	if l.LeadCost < 0 {
		errs = append(errs, "lead cost cannot be negative")
	}
	if l.EstimatedValue < 0 {
		errs = append(errs, "estimated value cannot be negative")
	}
	return errs
}

func validLeadSource(source string) bool {
	for _, s := range LeadSources {
		if s == source {
			return true
		}
	}
	return false
}
