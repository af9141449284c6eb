package model

import (
	"time"

	"github.com/google/uuid"
)

type SiteStatus string

const (
	SiteStatusPreContract SiteStatus = "pre_contract"
	SiteStatusInProgress  SiteStatus = "in_progress"
	SiteStatusCompleted   SiteStatus = "completed"
	SiteStatusSettled     SiteStatus = "settled" // terminal, set by hand
)

// SiteModel maps the projects table.
type SiteModel struct {
	ProjectID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:project_id" json:"project_id"`

	SiteName  string  `gorm:"type:varchar(150);not null;column:site_name" json:"site_name"`
	StartDate *string `gorm:"type:date;column:start_date" json:"start_date,omitempty"`
	EndDate   *string `gorm:"type:date;column:end_date" json:"end_date,omitempty"`

	// IsSettled overrides the date-derived status once a site is closed out.
	IsSettled bool `gorm:"not null;default:false;column:is_settled" json:"is_settled"`

	IsDeleted bool       `gorm:"not null;default:false;column:is_deleted" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SiteModel) TableName() string { return "projects" }

// Status derives the lifecycle state from the date window, with the
// settled flag terminal.
func (m *SiteModel) Status(today string) SiteStatus {
	if m.IsSettled {
		return SiteStatusSettled
	}
	if m.StartDate != nil && today < *m.StartDate {
		return SiteStatusPreContract
	}
	if m.EndDate != nil && today > *m.EndDate {
		return SiteStatusCompleted
	}
	return SiteStatusInProgress
}
