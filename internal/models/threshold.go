package models

import (
	"gorm.io/gorm"
)

// Threshold is a per-user override of the allowed open days for a
// priority. ProjectID nil means the override is the user's global default
// for that priority; non-nil scopes it to a single project.
//
// At most one row should exist per (user, project-or-null, priority); the
// write path upserts on that tuple.
type Threshold struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	UserID      string       `json:"-" gorm:"column:user_id;index;not null"`
	ProjectID   *string      `json:"projectId" gorm:"column:project_id"`
	Priority    TaskPriority `json:"priority" gorm:"not null"`
	AllowedDays float64      `json:"allowedDays" gorm:"column:allowed_days;not null"`
	gorm.Model
}

// TableName specifies the table name for the Threshold model
func (Threshold) TableName() string {
	return "thresholds"
}
