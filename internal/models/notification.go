package models

import (
	"gorm.io/gorm"
)

// Notification types created by the overdue scanner. Other types (e.g.
// reminders created by user actions) share the same table.
const (
	NotificationTaskOverdue = "task_overdue"
	NotificationTaskAtRisk  = "task_at_risk"
)

// Notification represents a message surfaced to a user. Scanner-created
// notifications carry the triggering task's ID; Read flips when the user
// acknowledges it.
type Notification struct {
	ID      string `json:"id" gorm:"primaryKey"`
	UserID  string `json:"-" gorm:"column:user_id;index"`
	Type    string `json:"type" gorm:"not null;index"`
	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message"`
	TaskID  string `json:"taskId" gorm:"column:task_id;index"`
	Read    bool   `json:"read" gorm:"default:false"`
	gorm.Model
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
