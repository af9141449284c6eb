package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
)

// ContractorModel maps the partners table. Contractors are never hard
// deleted; attendance entries keep referencing historical ids.
type ContractorModel struct {
	PartnerID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:partner_id" json:"partner_id"`

	Name                  string     `gorm:"type:varchar(150);not null;column:name" json:"name"`
	DefaultWorkCategoryID *uuid.UUID `gorm:"type:uuid;column:default_work_category_id" json:"default_work_category_id,omitempty"`
	ShowInAttendance      bool       `gorm:"not null;default:true;column:show_in_attendance" json:"show_in_attendance"`

	IsDeleted bool       `gorm:"not null;default:false;column:is_deleted" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ContractorModel) TableName() string { return "partners" }

// DisplayName is the legal name with corporate tokens stripped.
func (m *ContractorModel) DisplayName() string {
	return nameindex.StripLegalSuffix(m.Name)
}
