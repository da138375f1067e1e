package models

import (
	"gorm.io/gorm"
)

// Checklist is a named list of items, usable both as a plain todo
// checklist and as a pricing list (items carry quantity and unit price).
type Checklist struct {
	ID     string          `json:"id" gorm:"primaryKey"`
	Name   string          `json:"name" gorm:"not null"`
	UserID string          `json:"-" gorm:"column:user_id;index"`
	Items  []ChecklistItem `json:"items" gorm:"foreignKey:ChecklistID"`
	gorm.Model
}

// TableName specifies the table name for the Checklist model
func (Checklist) TableName() string {
	return "checklists"
}

// ChecklistItem is a single line in a checklist.
type ChecklistItem struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	ChecklistID string  `json:"-" gorm:"column:checklist_id;index"`
	Name        string  `json:"name" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"default:1"`
	UnitPrice   float64 `json:"unitPrice" gorm:"column:unit_price;default:0"`
	Done        bool    `json:"done" gorm:"default:false"`
	gorm.Model
}

// TableName specifies the table name for the ChecklistItem model
func (ChecklistItem) TableName() string {
	return "checklist_items"
}
