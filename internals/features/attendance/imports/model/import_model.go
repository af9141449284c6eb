package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ImportSkipModel records one row the importer could not apply, with the
// fuzzy suggestions that were shown for missing contractors.
type ImportSkipModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	RunID      uuid.UUID      `gorm:"type:uuid;not null;index;column:run_id" json:"run_id"`
	EntryDate  string         `gorm:"type:date;column:entry_date" json:"entry_date"`
	Contractor string         `gorm:"type:varchar(150);column:contractor" json:"contractor"`
	Name       string         `gorm:"type:varchar(100);column:name" json:"name"`
	Reason     string         `gorm:"type:varchar(32);not null;column:reason" json:"reason"`
	Raw        *string        `gorm:"column:raw" json:"raw,omitempty"`
	Suggestion pq.StringArray `gorm:"type:text[];column:suggestion" json:"suggestion,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ImportSkipModel) TableName() string { return "import_skips" }

// Skip reasons, matching the importer's summary buckets.
const (
	ReasonInvalidFormat     = "invalid_format"
	ReasonMappingSkip       = "mapping_skip"
	ReasonMissingContractor = "missing_contractor"
	ReasonMissingWorker     = "missing_worker"
	ReasonDuplicateExisting = "duplicate_existing"
)

// ImportMappingModel stores a user's saved override table: free-text
// contractor labels to canonical targets (or the skip/nexus sentinels).
type ImportMappingModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	UserID   uuid.UUID         `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Name     string            `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Mappings datatypes.JSONMap `gorm:"type:jsonb;column:mappings" json:"mappings"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (ImportMappingModel) TableName() string { return "import_mappings" }
