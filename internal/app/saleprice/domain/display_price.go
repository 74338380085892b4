package domain

import "github.com/shopspring/decimal"

// DisplayPrice is an amount paired with an ISO currency code. Turning it into a
// localized string is left to the caller.
type DisplayPrice struct {
	Amount   decimal.Decimal
	Currency string
}
