package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkerModel maps the workers table. A worker belongs to exactly one
// contractor; moving someone is an explicit contractor_id update.
// The deletion flag is named id_deleted in the schema.
type WorkerModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	Name         string    `gorm:"type:varchar(100);not null;column:name" json:"name"`
	ContractorID uuid.UUID `gorm:"type:uuid;not null;column:contractor_id" json:"contractor_id"`

	// LastWorkingDate is derived from attendance and only feeds the
	// "inactive" hint in the roster screen.
	LastWorkingDate *string `gorm:"type:date;column:last_working_date" json:"last_working_date,omitempty"`

	IDDeleted bool       `gorm:"not null;default:false;column:id_deleted" json:"id_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WorkerModel) TableName() string { return "workers" }
