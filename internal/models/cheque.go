package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cheque statuses. Every cheque is created Pending; the only legal
// transitions are Pending -> Cleared and Pending -> Bounced.
const (
	ChequeStatusPending = "Pending"
	ChequeStatusCleared = "Cleared"
	ChequeStatusBounced = "Bounced"
)

// Cheque is a payment instrument issued against the bank balance.
// Only pending cheques count against the balance.
type Cheque struct {
	ID        uint            `gorm:"primaryKey"`
	Date      time.Time       `gorm:"index;not null"`
	ShopName  string          `gorm:"size:64;index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Payee     string          `gorm:"size:128"`
	Status    string          `gorm:"size:16;index;not null;default:Pending"`
	CreatedAt time.Time
}
