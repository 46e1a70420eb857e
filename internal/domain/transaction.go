package domain

import "time"

// Transaction Model, one immutable ledger entry per committed transfer
type Transaction struct {
	ID                uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	SenderPaymentID   string    `gorm:"size:32;index;not null" json:"sender_upi_id"`   // Payment ID of the sender
	ReceiverPaymentID string    `gorm:"size:32;index;not null" json:"receiver_upi_id"` // Payment ID of the receiver
	Amount            int64     `gorm:"not null" json:"amount"`                        // Amount in minor units, always positive
	Timestamp         time.Time `gorm:"index;not null" json:"timestamp"`               // Set once at insert
}

// Involves reports whether paymentID is the sender or the receiver of t
func (t Transaction) Involves(paymentID string) bool {
	return t.SenderPaymentID == paymentID || t.ReceiverPaymentID == paymentID
}
