package utils

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const etherDecimals = 18

var ErrInvalidAmount = errors.New("invalid amount")

// ParseEther converts a decimal ether string such as "1.5" into wei.
func ParseEther(value string) (*big.Int, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, value)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, value)
	}

	wei := amount.Shift(etherDecimals)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, value, etherDecimals)
	}
	return wei.BigInt(), nil
}

// FormatEther renders a wei amount as a decimal ether string.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -etherDecimals).String()
}
