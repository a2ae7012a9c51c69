package model

import (
	"time"
)

// Transaction represents the database model for payment transactions
type Transaction struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement"`
	Reference         string    `gorm:"uniqueIndex;not null;size:255"`
	ProviderCode      string    `gorm:"not null;index;size:50"`
	ProviderReference string    `gorm:"index;size:255"`
	Amount            string    `gorm:"not null;size:50"`
	Currency          string    `gorm:"not null;size:10"`
	CountryCode       string    `gorm:"size:10"`
	PayerPhone        string    `gorm:"size:50"`
	State             string    `gorm:"not null;index;size:50"`
	StateMessage      string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"not null;index"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "payment_transactions"
}
