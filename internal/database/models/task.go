package models

import (
	"time"

	"entity-tracker-backend/internal/database/types"
)

// Task is a unit of work tracked against an Entity
type Task struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	EntityID       uint               `json:"entity_id" gorm:"not null;index"`
	Title          string             `json:"title" gorm:"size:200;not null"`
	Description    *string            `json:"description" gorm:"type:text"`
	Status         string             `json:"status" gorm:"size:50;default:pending"`
	Priority       *string            `json:"priority" gorm:"size:50"`
	DueDate        *types.Date        `json:"due_date"`
	StartDate      *types.Date        `json:"start_date"`
	CompletionDate *types.Date        `json:"completion_date"`
	Category       *string            `json:"category" gorm:"size:100"`
	AssignedTo     *string            `json:"assigned_to" gorm:"size:100"`
	EstimatedHours *float64           `json:"estimated_hours"`
	ActualHours    *float64           `json:"actual_hours"`
	Dependencies   types.Dependencies `json:"dependencies"`
	CreatedAt      time.Time          `json:"created_at"`
}

// TableName returns the table name for Task
func (Task) TableName() string {
	return "task"
}
