// Package events carries notifications about committed transfers to other systems.
package events

import (
	"context"
	"time"
)

// TransferCompleted is emitted once per committed transfer
type TransferCompleted struct {
	TransactionID     uint      `json:"transaction_id"`
	SenderPaymentID   string    `json:"sender_upi_id"`
	ReceiverPaymentID string    `json:"receiver_upi_id"`
	Amount            int64     `json:"amount"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishTransferCompleted(ctx context.Context, event TransferCompleted) error
}

// Nop discards every event; used when no broker is configured
type Nop struct{}

// PublishTransferCompleted drops the event
func (Nop) PublishTransferCompleted(context.Context, TransferCompleted) error { return nil }
