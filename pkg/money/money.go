// Package money formats and parses monetary amounts the way the ledger
// presents them to the operator: Brazilian real, two decimals, grouped
// thousands ("R$ 1.234,56").
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrInvalidAmount is returned when an input cannot be read as an amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals is returned when an amount carries fractions of a cent.
	ErrTooManyDecimals = errors.New("amount must not have more than 2 decimal places")
)

// Symbol is the currency symbol prefixed to formatted amounts.
const Symbol = "R$"

// Places is the number of decimal places an amount may carry.
const Places = 2

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format renders v with two decimals and pt-BR grouping, e.g. "R$ 1.234,56".
// The value is never converted to a float, so large amounts keep their cents.
func Format(v decimal.Decimal) string {
	whole, cents, _ := strings.Cut(v.Abs().StringFixed(Places), ".")
	sign := ""
	if v.Round(Places).IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%s %s%s,%s", Symbol, sign, group(whole), cents)
}

// group inserts thousands separators into a string of digits.
func group(digits string) string {
	if n, err := strconv.ParseUint(digits, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Parse reads an amount typed by the operator. It accepts a dot or a comma
// as decimal separator; when a comma is present, dots are taken as
// thousands separators ("1.234,56"). Fractions of a cent are rejected.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), Symbol))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.Equal(d.Truncate(Places)) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrTooManyDecimals, s)
	}
	return d, nil
}
