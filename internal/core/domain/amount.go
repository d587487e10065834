package domain

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmountNotPositive means the amount floors to zero base units or less.
	ErrAmountNotPositive = errors.New("amount is not positive in base units")
	// ErrAmountOverflow means the amount does not fit in a uint64 of base units.
	ErrAmountOverflow = errors.New("amount exceeds representable range")
)

// ToBaseUnits converts a decimal amount to integer base units using floor
// rounding: floor(amount * 10^decimals).
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	units := amount.Shift(int32(decimals)).Floor()
	if !units.IsPositive() {
		return 0, ErrAmountNotPositive
	}
	bi := units.BigInt()
	if !bi.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return bi.Uint64(), nil
}

// FromBaseUnits converts integer base units back to a decimal amount.
func FromBaseUnits(units uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), -int32(decimals))
}
