package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseMap maps an expense category name to a non-negative amount.
// It is persisted as a JSON document column; the free-text note about a
// day's expenses lives in Transaction.Description, not in the map.
type ExpenseMap map[string]decimal.Decimal

// Value implements driver.Valuer.
func (m ExpenseMap) Value() (driver.Value, error) {
	if m == nil {
		m = ExpenseMap{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal expenses: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *ExpenseMap) Scan(value interface{}) error {
	if value == nil {
		*m = ExpenseMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported expenses column type %T", value)
	}
	if len(data) == 0 {
		*m = ExpenseMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// Total sums all category amounts.
func (m ExpenseMap) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range m {
		total = total.Add(amount)
	}
	return total
}

// Transaction is one day's sales entry for a shop. Rows are write-once:
// nothing in the system updates or deletes them.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	ShopName    string          `gorm:"size:64;index;not null"`
	Date        time.Time       `gorm:"index;not null"`
	Sales       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CashOut     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Expenses    ExpenseMap      `gorm:"type:text"`
	Description string          `gorm:"size:255"`
	BankDeposit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

// NetProfit is sales minus cash out minus total expenses;
// the description never counts toward expenses.
func (t *Transaction) NetProfit() decimal.Decimal {
	return t.Sales.Sub(t.CashOut).Sub(t.Expenses.Total())
}
