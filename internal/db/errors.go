package db

import (
	"errors"
	"fmt"

	"fastpay/internal/domain"

	"gorm.io/gorm"
)

// storeError maps GORM errors onto domain errors; everything unrecognised is
// reported as domain.ErrStoreUnavailable with the driver error kept in the chain.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrAccountNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateKey)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
}
