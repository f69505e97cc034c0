package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
)

// Validation constants
const (
	MaxAccountNameLength   = 255
	MinAccountNameLength   = 1
	MaxDescriptionLength   = 1024
	MaxLinesPerTransaction = 1000
	MaxLineAmount          = "1000000000000000" // 1 quadrillion
	DefaultPageSize        = 50
	MaxPageSize            = 1000
)

var maxLineAmount = decimal.RequireFromString(MaxLineAmount)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
	"VND": true, "CLP": true, "ISK": true, "BHD": true,
	"KWD": true, "OMR": true, "JOD": true, "TND": true,
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = NormalizeCurrency(currency)

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a supported ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a single line amount in the given currency.
func ValidateAmount(amount decimal.Decimal, currency string) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	if amount.GreaterThan(maxLineAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxLineAmount)
	}

	if !FitsCurrencyScale(amount, currency) {
		return fmt.Errorf("%w: %s allows %d decimal places", ErrInvalidAmount, currency, CurrencyScale(currency))
	}

	return nil
}

// ValidateLines checks the structural shape of a transaction and returns the
// single currency shared by its lines. Account existence and balance are
// checked separately.
func ValidateLines(lines []EntryLine) (string, error) {
	if len(lines) < 2 {
		return "", ErrInvalidTransaction
	}
	if len(lines) > MaxLinesPerTransaction {
		return "", fmt.Errorf("%w: at most %d lines allowed", ErrInvalidTransaction, MaxLinesPerTransaction)
	}

	var currency string
	for i, l := range lines {
		if strings.TrimSpace(l.AccountID) == "" {
			return "", fmt.Errorf("%w: line %d has no account", ErrInvalidTransaction, i+1)
		}
		if len(l.Description) > MaxDescriptionLength {
			return "", fmt.Errorf("%w: line %d description too long", ErrInvalidTransaction, i+1)
		}
		if err := ValidateCurrency(l.Currency); err != nil {
			return "", err
		}

		lc := NormalizeCurrency(l.Currency)
		if currency == "" {
			currency = lc
		} else if lc != currency {
			return "", fmt.Errorf("%w: line %d is %s, expected %s", ErrCurrencyMismatch, i+1, lc, currency)
		}

		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return "", fmt.Errorf("%w: line %d has a negative amount", ErrInvalidAmount, i+1)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return "", fmt.Errorf("%w: line %d must set exactly one of debit or credit", ErrInvalidAmount, i+1)
		}
		if err := ValidateAmount(l.Amount(), lc); err != nil {
			return "", fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	return currency, nil
}

// CheckBalanced verifies that the debits of the lines equal their credits exactly.
func CheckBalanced(lines []EntryLine) error {
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedTransaction, debits.String(), credits.String())
	}

	return nil
}

// ValidatePagination applies defaults and limits to page parameters.
func ValidatePagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}

	if perPage <= 0 {
		perPage = DefaultPageSize
	}

	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage
}
