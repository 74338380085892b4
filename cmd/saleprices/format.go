package main

import (
	"strings"

	"github.com/light-bringer/saleprice-service/internal/app/saleprice/domain"
)

// minorUnits lists ISO 4217 currencies whose minor unit is not two digits.
var minorUnits = map[string]int32{
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0, "KRW": 0,
	"PYG": 0, "RWF": 0, "UGX": 0, "VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
}

// formatDisplayPrice renders the amount with the currency's minor unit digits,
// two when the currency is unknown.
func formatDisplayPrice(dp domain.DisplayPrice) string {
	currency := strings.ToUpper(dp.Currency)
	places, ok := minorUnits[currency]
	if !ok {
		places = 2
	}
	return dp.Amount.StringFixed(places) + " " + currency
}
