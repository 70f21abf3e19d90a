package models

import (
	"time"

	"entity-tracker-backend/internal/database/types"
)

// Entity is the root aggregate: a legal or organizational unit that owns
// accounts, tasks and documents.
type Entity struct {
	ID                   uint        `json:"id" gorm:"primaryKey"`
	Name                 string      `json:"name" gorm:"size:100;not null"`
	Description          *string     `json:"description" gorm:"type:text"`
	EIN                  *string     `json:"ein" gorm:"column:ein;size:50"`
	RegisteredAddress    *string     `json:"registered_address" gorm:"size:500"`
	RegisteredPhone      *string     `json:"registered_phone" gorm:"size:50"`
	StateOfIncorporation *string     `json:"state_of_incorporation" gorm:"size:100"`
	Status               string      `json:"status" gorm:"size:50;default:active"`
	DateOfIncorporation  *types.Date `json:"date_of_incorporation"`
	CreatedAt            time.Time   `json:"created_at"`

	// Relationships. Rows are removed explicitly by the repository before the
	// parent, so no ON DELETE action is declared.
	Accounts  []Account  `json:"accounts,omitempty" gorm:"foreignKey:EntityID"`
	Tasks     []Task     `json:"tasks,omitempty" gorm:"foreignKey:EntityID"`
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:EntityID"`
}

// TableName returns the table name for Entity
func (Entity) TableName() string {
	return "entity"
}
