package database

import (
	"fmt"

	"shop-ledger/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate ensures the schema exists; safe to call on every start.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Cheque{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
