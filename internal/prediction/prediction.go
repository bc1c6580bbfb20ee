// Package prediction reads the stock prediction table produced by the
// offline model. The file is re-read on every request so a refreshed CSV
// is picked up without a restart.
package prediction

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Row is one predicted stock quantity for an item in a shop.
type Row struct {
	ShopName string  `json:"shop_name"`
	Item     string  `json:"item"`
	Quantity float64 `json:"predicted_quantity"`
}

// Load reads the whole prediction CSV. Expected header:
// ShopName,Item,Predicted_Quantity (column order taken from the header).
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prediction file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read prediction file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("prediction file %s is empty", path)
	}

	shopCol, itemCol, qtyCol := -1, -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "ShopName":
			shopCol = i
		case "Item":
			itemCol = i
		case "Predicted_Quantity":
			qtyCol = i
		}
	}
	if shopCol < 0 || itemCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("prediction file %s: missing required columns", path)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		qty, err := strconv.ParseFloat(strings.TrimSpace(rec[qtyCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse predicted quantity %q: %w", rec[qtyCol], err)
		}
		rows = append(rows, Row{
			ShopName: strings.TrimSpace(rec[shopCol]),
			Item:     strings.TrimSpace(rec[itemCol]),
			Quantity: qty,
		})
	}
	return rows, nil
}

// Shops returns the distinct shop names in file order, never nil.
func Shops(rows []Row) []string {
	seen := make(map[string]bool)
	shops := []string{}
	for _, r := range rows {
		if !seen[r.ShopName] {
			seen[r.ShopName] = true
			shops = append(shops, r.ShopName)
		}
	}
	return shops
}

// Items returns the distinct items predicted for the given shop, never nil.
func Items(rows []Row, shop string) []string {
	seen := make(map[string]bool)
	items := []string{}
	for _, r := range rows {
		if r.ShopName == shop && !seen[r.Item] {
			seen[r.Item] = true
			items = append(items, r.Item)
		}
	}
	return items
}

// Lookup returns the predicted quantity for a shop/item pair.
func Lookup(rows []Row, shop, item string) (float64, bool) {
	for _, r := range rows {
		if r.ShopName == shop && r.Item == item {
			return r.Quantity, true
		}
	}
	return 0, false
}
