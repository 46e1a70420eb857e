package db

import (
	"context"
	"fmt"

	"fastpay/internal/domain"

	"gorm.io/gorm"
)

// AccountRepository stores accounts with GORM
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository binds the repository to db, which may be a transaction
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail looks an account up by its normalized email
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, storeError("find account by email", err)
	}
	return &acc, nil
}

// FindByPaymentID looks an account up by its payment id
func (r *AccountRepository) FindByPaymentID(ctx context.Context, paymentID string) (*domain.Account, error) {
	var acc domain.Account
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&acc).Error; err != nil {
		return nil, storeError("find account by payment id", err)
	}
	return &acc, nil
}

// Insert creates the account and fills in its ID
func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) error {
	return storeError("insert account", r.db.WithContext(ctx).Create(account).Error)
}

// Update saves every field of an existing account
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if account.ID == 0 {
		return fmt.Errorf("update account: %w: missing id", domain.ErrInvalidInput)
	}
	if account.Balance < 0 {
		return fmt.Errorf("update account: %w: negative balance", domain.ErrInvalidInput)
	}
	return storeError("update account", r.db.WithContext(ctx).Save(account).Error)
}

// Debit subtracts amount in one conditional statement, so two concurrent
// debits can never take the balance below zero.
func (r *AccountRepository) Debit(ctx context.Context, paymentID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit: %w", domain.ErrInvalidAmount)
	}
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("payment_id = ? AND balance >= ?", paymentID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return storeError("debit", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	// Nothing matched: tell a missing account apart from a short balance
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("payment_id = ?", paymentID).Count(&count).Error; err != nil {
		return storeError("debit", err)
	}
	if count == 0 {
		return fmt.Errorf("debit: %w", domain.ErrAccountNotFound)
	}
	return fmt.Errorf("debit: %w", domain.ErrInsufficientBalance)
}

// Credit adds amount to the balance of an existing account
func (r *AccountRepository) Credit(ctx context.Context, paymentID string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit: %w", domain.ErrInvalidAmount)
	}
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("payment_id = ?", paymentID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return storeError("credit", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("credit: %w", domain.ErrAccountNotFound)
	}
	return nil
}

var _ domain.AccountRepository = (*AccountRepository)(nil)
