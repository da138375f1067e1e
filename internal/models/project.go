package models

import (
	"gorm.io/gorm"
)

// Project groups tasks under a user-defined bucket. Tasks reference a
// project by ID; the link is optional.
type Project struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Color       string `json:"color"`
	UserID      string `json:"-" gorm:"column:user_id;index"`
	gorm.Model
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
