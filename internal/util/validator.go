package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// amounts above this are assumed to be input mistakes
var maxAmount = decimal.NewFromInt(10_000_000)

// ParseAmount parses a non-negative money amount. An empty string is zero,
// matching the form fields that default to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", d)
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount too large, got %s", d)
	}
	return d, nil
}

// ParsePositiveAmount parses an amount that must be strictly positive.
func ParsePositiveAmount(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", d)
	}
	return d, nil
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateShop checks the shop name against the configured shop list.
func ValidateShop(shop string, shops []string) error {
	if shop == "" {
		return fmt.Errorf("shop name is empty")
	}
	for _, s := range shops {
		if s == shop {
			return nil
		}
	}
	return fmt.Errorf("unknown shop %q", shop)
}
