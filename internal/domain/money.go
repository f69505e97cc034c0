package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Minor-unit exponents for currencies that do not use two decimal places.
var currencyScales = map[string]int32{
	"JPY": 0, "KRW": 0, "VND": 0, "CLP": 0, "ISK": 0,
	"BHD": 3, "KWD": 3, "OMR": 3, "JOD": 3, "TND": 3,
}

const defaultCurrencyScale int32 = 2

// CurrencyScale returns the number of fractional digits used by currency.
func CurrencyScale(currency string) int32 {
	if s, ok := currencyScales[strings.ToUpper(currency)]; ok {
		return s
	}
	return defaultCurrencyScale
}

// FormatAmount renders amount with the fixed scale of its currency.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(CurrencyScale(currency))
}

// FitsCurrencyScale reports whether amount has no more fractional digits
// than the currency allows.
func FitsCurrencyScale(amount decimal.Decimal, currency string) bool {
	return amount.Equal(amount.Truncate(CurrencyScale(currency)))
}

// NormalBalance returns the balance of an account of type t given its debit
// and credit totals, signed so that the normal side is positive.
func NormalBalance(t AccountType, debits, credits decimal.Decimal) decimal.Decimal {
	if t.IsDebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}
