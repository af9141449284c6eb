package model

import (
	"time"

	"github.com/google/uuid"

	contractorModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/model"
	workerModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/model"
	worktypeModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/worktypes/model"
	userModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/users/model"
)

// AttendanceEntryModel is the central record. Two mutually exclusive
// identity spaces share the table: roster rows carry worker_id, external
// rows carry nexus_user_id with the display name encoded in
// work_type_text. At most one entry exists per (entry_date, project_id,
// worker_id) and per (entry_date, project_id, nexus_user_id); both pairs
// are partial unique indexes in the schema and the upsert conflict
// targets here.
type AttendanceEntryModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	EntryDate string    `gorm:"type:date;not null;column:entry_date" json:"entry_date"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;column:project_id" json:"project_id"`

	ContractorID *uuid.UUID `gorm:"type:uuid;column:contractor_id" json:"contractor_id,omitempty"`
	WorkerID     *uuid.UUID `gorm:"type:uuid;column:worker_id" json:"worker_id,omitempty"`
	NexusUserID  *uuid.UUID `gorm:"type:uuid;column:nexus_user_id" json:"nexus_user_id,omitempty"`

	WorkTypeID *uuid.UUID `gorm:"type:uuid;column:work_type_id" json:"work_type_id,omitempty"`
	// Free memo. External rows additionally encode the display name here,
	// see the memo package.
	WorkTypeText *string `gorm:"column:work_type_text" json:"work_type_text,omitempty"`

	CreatedBy string    `gorm:"type:varchar(64);column:created_by" json:"created_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Contractor *contractorModel.ContractorModel `gorm:"foreignKey:ContractorID;references:PartnerID" json:"contractor,omitempty"`
	Worker     *workerModel.WorkerModel         `gorm:"foreignKey:WorkerID;references:ID" json:"worker,omitempty"`
	WorkType   *worktypeModel.WorkTypeModel     `gorm:"foreignKey:WorkTypeID;references:ID" json:"work_type,omitempty"`
	NexusUser  *userModel.UserModel             `gorm:"foreignKey:NexusUserID;references:UserID" json:"nexus_user,omitempty"`
}

func (AttendanceEntryModel) TableName() string { return "attendance_entries" }
