package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

func TestFormatDisplayPrice(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"two decimals", "19.5", "EUR", "19.50 EUR"},
		{"no minor unit", "1500", "JPY", "1500 JPY"},
		{"no minor unit rounds", "1499.6", "JPY", "1500 JPY"},
		{"three decimals", "12.5", "KWD", "12.500 KWD"},
		{"unknown currency", "7", "XYZ", "7.00 XYZ"},
		{"lower case code", "3.25", "usd", "3.25 USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dp := domain.DisplayPrice{Amount: decimal.RequireFromString(tt.amount), Currency: tt.currency}
			assert.Equal(t, tt.want, formatDisplayPrice(dp))
		})
	}
}
