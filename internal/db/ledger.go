package db

import (
	"context"
	"fmt"

	"fastpay/internal/domain"

	"gorm.io/gorm"
)

// LedgerRepository is the append-only transaction log. It has no update or delete.
type LedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository binds the repository to db, which may be a transaction
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Insert appends tx to the ledger and fills in its ID
func (r *LedgerRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	if tx.Amount <= 0 {
		return fmt.Errorf("insert transaction: %w", domain.ErrInvalidAmount)
	}
	return storeError("insert transaction", r.db.WithContext(ctx).Create(tx).Error)
}

// FindByPaymentID returns every entry where paymentID is sender or receiver,
// newest first. Entries sharing a timestamp are ordered by descending id.
func (r *LedgerRepository) FindByPaymentID(ctx context.Context, paymentID string) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0)
	err := r.db.WithContext(ctx).
		Where("sender_payment_id = ? OR receiver_payment_id = ?", paymentID, paymentID).
		Order("timestamp desc").
		Order("id desc").
		Find(&txs).Error
	if err != nil {
		return nil, storeError("find transactions", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}

var _ domain.LedgerRepository = (*LedgerRepository)(nil)
