package db

import (
	"fastpay/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate creates or updates the accounts and transactions tables, with the
// unique indexes on email and payment_id
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Account{}, &domain.Transaction{})
}
