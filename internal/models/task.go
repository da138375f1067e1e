package models

import (
	"gorm.io/gorm"
)

// TaskStatus represents the status of a task on the board
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// ValidStatus reports whether s is one of the known board statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task represents a task in the system.
// Age for overdue classification is measured from CreatedAt, even if the
// task later moves out of done back onto the board.
type Task struct {
	ID            string       `json:"id" gorm:"primaryKey"`
	Title         string       `json:"title" gorm:"not null"`
	Description   string       `json:"description"`
	Status        TaskStatus   `json:"status" gorm:"not null;default:'todo';index"`
	Priority      TaskPriority `json:"priority" gorm:"default:'medium'"`
	ProjectID     string       `json:"projectId" gorm:"column:project_id;index"`
	ScheduledDate string       `json:"scheduledDate" gorm:"column:scheduled_date"`
	UserID        string       `json:"-" gorm:"column:user_id;index"`
	gorm.Model
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}
