package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExpenseMapRoundTrip(t *testing.T) {
	original := ExpenseMap{
		"Salary":     amount("300"),
		"Rent":       amount("150.50"),
		"Petty Cash": amount("0"),
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var restored ExpenseMap
	if err := restored.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(restored) != len(original) {
		t.Fatalf("got %d entries, want %d", len(restored), len(original))
	}
	for category, want := range original {
		got, ok := restored[category]
		if !ok {
			t.Errorf("missing category %q", category)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%s: got %s, want %s", category, got, want)
		}
	}
}

func TestExpenseMapScanEmpty(t *testing.T) {
	var m ExpenseMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("nil column should scan to an empty map, got %v", m)
	}

	if err := m.Scan(""); err != nil {
		t.Fatalf("scan empty string: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("empty column should scan to an empty map, got %v", m)
	}
}

func TestExpenseMapTotal(t *testing.T) {
	m := ExpenseMap{
		"Salary": amount("300"),
		"Rent":   amount("150.25"),
	}
	if got := m.Total(); !got.Equal(amount("450.25")) {
		t.Errorf("total: got %s, want 450.25", got)
	}

	var empty ExpenseMap
	if !empty.Total().IsZero() {
		t.Error("empty map total should be zero")
	}
}

func TestNetProfit(t *testing.T) {
	tx := Transaction{
		ShopName: "Gampaha",
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Sales:    amount("1000"),
		CashOut:  amount("200"),
		Expenses: ExpenseMap{
			"Salary": amount("300"),
		},
		Description: "test",
	}

	// sales - cash out - expenses; the description contributes nothing
	if got := tx.NetProfit(); !got.Equal(amount("500")) {
		t.Errorf("net profit: got %s, want 500", got)
	}
}
