package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	Username     string `gorm:"type:varchar(100);unique;not null;column:username" json:"username"`
	PasswordHash string `gorm:"type:varchar(100);not null;column:password_hash" json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'user';column:role" json:"role"`
	IsActive     bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserModel) TableName() string { return "users" }

// UserSettingModel holds per-user preferences, keyed by user.
type UserSettingModel struct {
	UserID           uuid.UUID  `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	DefaultProjectID *uuid.UUID `gorm:"type:uuid;column:default_project_id" json:"default_project_id,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserSettingModel) TableName() string { return "user_settings" }
