package db

import (
	"context"

	"fastpay/internal/domain"

	"gorm.io/gorm"
)

// Store bundles the repositories over one connection and runs units of work
type Store struct {
	db       *gorm.DB
	Accounts *AccountRepository
	Ledger   *LedgerRepository
}

// NewStore builds repositories over db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Accounts: NewAccountRepository(db),
		Ledger:   NewLedgerRepository(db),
	}
}

// WithinTransaction runs fn in a database transaction. Errors returned by fn
// are passed through unchanged after the rollback.
func (s *Store) WithinTransaction(ctx context.Context, fn func(accounts domain.AccountRepository, ledger domain.LedgerRepository) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewAccountRepository(tx), NewLedgerRepository(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return storeError("commit transaction", err)
}

// Ping checks that the store is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storeError("ping", err)
	}
	return storeError("ping", sqlDB.PingContext(ctx))
}

// Close releases the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ domain.UnitOfWork = (*Store)(nil)
