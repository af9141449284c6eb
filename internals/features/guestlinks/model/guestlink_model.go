package model

import (
	"time"

	"github.com/google/uuid"
)

// GuestLinkModel maps guest_links. A link scopes a guest session to one
// site; expired links and links soft-deleted for more than 30 days are
// pruned lazily when the table is touched.
type GuestLinkModel struct {
	Token string `gorm:"type:varchar(64);primaryKey;column:token" json:"token"`

	ProjectID         uuid.UUID `gorm:"type:uuid;not null;column:project_id" json:"project_id"`
	ExpiresAt         *string   `gorm:"type:date;column:expires_at" json:"expires_at,omitempty"`
	CanEditAttendance bool      `gorm:"not null;default:false;column:can_edit_attendance" json:"can_edit_attendance"`

	IsDeleted bool       `gorm:"not null;default:false;column:is_deleted" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (GuestLinkModel) TableName() string { return "guest_links" }

// Expired reports whether the link's expiry date has passed. today is a
// YYYY-MM-DD date string.
func (m *GuestLinkModel) Expired(today string) bool {
	return m.ExpiresAt != nil && *m.ExpiresAt < today
}
