package domain

import "context"

// AccountRepository is the account store adapter
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*Account, error)
	Insert(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	// Debit subtracts amount only while the balance covers it, in a single statement.
	Debit(ctx context.Context, paymentID string, amount int64) error
	Credit(ctx context.Context, paymentID string, amount int64) error
}

// LedgerRepository is the append-only transaction store adapter
type LedgerRepository interface {
	Insert(ctx context.Context, tx *Transaction) error
	// FindByPaymentID returns entries where paymentID is sender or receiver, newest first.
	FindByPaymentID(ctx context.Context, paymentID string) ([]Transaction, error)
}

// UnitOfWork runs fn against repositories bound to a single store transaction.
// A non-nil error from fn rolls back every write made through them.
type UnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(accounts AccountRepository, ledger LedgerRepository) error) error
}
