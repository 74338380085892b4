package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// displayScale is the number of fractional digits kept when converting to decimal.
const displayScale = 16

// Money is an exact monetary amount backed by big.Rat.
type Money struct {
	rat *big.Rat
}

// NewMoney creates Money from numerator and denominator: NewMoney(1095, 100) is 10.95.
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// NewMoneyFromRat copies rat into a new Money. A nil rat yields zero.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: new(big.Rat)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// ParseMoney parses a decimal string such as "10.95".
func ParseMoney(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return &Money{rat: rat}, nil
}

// Rat returns a copy of the underlying rational, suitable for NUMERIC columns.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Decimal converts the amount to a shopspring decimal.
func (m *Money) Decimal() decimal.Decimal {
	num := decimal.NewFromBigInt(m.rat.Num(), 0)
	if m.rat.IsInt() {
		return num
	}
	denom := decimal.NewFromBigInt(m.rat.Denom(), 0)
	return num.DivRound(denom, displayScale)
}

// IsNegative returns true if the amount is below zero.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// String formats the amount with two decimals.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
