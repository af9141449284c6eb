package model

import (
	"time"

	"github.com/google/uuid"
)

// Two-level work taxonomy: a type belongs to exactly one category. Names
// are unique per scope; re-creating a soft-deleted name revives the row.
// Both tables use the schema's id_deleted flag naming.

type WorkCategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name string    `gorm:"type:varchar(100);not null;column:name" json:"name"`

	IDDeleted bool       `gorm:"not null;default:false;column:id_deleted" json:"id_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WorkCategoryModel) TableName() string { return "work_categories" }

type WorkTypeModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name       string     `gorm:"type:varchar(100);not null;column:name" json:"name"`
	CategoryID *uuid.UUID `gorm:"type:uuid;column:category_id" json:"category_id,omitempty"`

	IDDeleted bool       `gorm:"not null;default:false;column:id_deleted" json:"id_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Category *WorkCategoryModel `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
}

func (WorkTypeModel) TableName() string { return "work_types" }
