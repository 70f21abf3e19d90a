package models

import "time"

// Account is a financial account held by an Entity
type Account struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	EntityID      uint      `json:"entity_id" gorm:"not null;index"`
	AccountName   string    `json:"account_name" gorm:"size:100;not null"`
	AccountNumber *string   `json:"account_number" gorm:"size:50"`
	Balance       float64   `json:"balance" gorm:"default:0"`
	AccountType   *string   `json:"account_type" gorm:"size:50"`
	Username      *string   `json:"username" gorm:"size:100"`
	Password      *string   `json:"-" gorm:"type:text"` // sealed, see internal/credentials
	AccountURL    *string   `json:"account_url" gorm:"column:account_url;size:500"`
	Notes         *string   `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the table name for Account
func (Account) TableName() string {
	return "account"
}
