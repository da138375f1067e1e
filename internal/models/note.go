package models

import (
	"gorm.io/gorm"
)

// Note is a free-form meeting note. Content is stored as raw markdown;
// rendering happens client-side.
type Note struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null"`
	Content     string `json:"content"`
	MeetingDate string `json:"meetingDate" gorm:"column:meeting_date"`
	UserID      string `json:"-" gorm:"column:user_id;index"`
	gorm.Model
}

// TableName specifies the table name for the Note model
func (Note) TableName() string {
	return "notes"
}
