package domain

import "time"

// DefaultBalance is the opening balance of every new account, in minor units
const DefaultBalance int64 = 1000

// Account Model
type Account struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Name         string    `gorm:"size:100;not null" json:"name"`              // Display name
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique login key
	PasswordHash string    `gorm:"not null" json:"-"`                          // bcrypt hash, never serialized
	PaymentID    string    `gorm:"size:32;uniqueIndex;not null" json:"upi_id"` // Unique payment identifier
	Balance      int64     `gorm:"not null;check:balance >= 0" json:"balance"` // Balance in minor units, never negative
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`           // Timestamp of creation
}
