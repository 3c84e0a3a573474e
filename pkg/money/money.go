// Package money holds the decimal helpers shared by pricing, the catalog, the
// cart and the order ledger. Amounts are never rounded here; presentation
// formats them.
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Zero is the zero amount.
var Zero = decimal.Zero

// MustParse converts a literal such as "14.99" and panics on malformed input.
// Use it only for compile-time constants and seed data.
func MustParse(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// ParseCurrencyInput converts free-form price input into a non-negative amount.
// A leading "$", surrounding whitespace and thousands separators are ignored.
// Empty, malformed or negative input yields zero.
func ParseCurrencyInput(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(amount)
}

// NonNegative clamps negative amounts to zero.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Sum adds the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

// Input is a request-side price that accepts a JSON number, a string or null.
// Decoding never fails on content: anything unparseable becomes zero.
type Input struct {
	Amount decimal.Decimal
	Set    bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Input) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*in = Input{}
		return nil
	}
	in.Set = true
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			in.Amount = decimal.Zero
			return nil
		}
		in.Amount = ParseCurrencyInput(s)
		return nil
	}
	in.Amount = ParseCurrencyInput(string(trimmed))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (in Input) MarshalJSON() ([]byte, error) {
	if !in.Set {
		return []byte("null"), nil
	}
	return []byte(in.Amount.String()), nil
}

// Ptr returns the parsed amount when the field was present.
func (in Input) Ptr() *decimal.Decimal {
	if !in.Set {
		return nil
	}
	amount := in.Amount
	return &amount
}
