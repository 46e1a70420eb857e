package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// AmountFromDecimal converts a wire amount into minor units.
// The amount must be a positive whole number that fits in an int64.
func AmountFromDecimal(d decimal.Decimal) (int64, error) {
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: must be a whole number of minor units", ErrInvalidAmount)
	}
	if d.GreaterThan(maxAmount) {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return d.IntPart(), nil
}
