package models

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money or quantity value as exchanged with the hotel API.
// The API is loose about numeric types, so decoding never fails: numbers,
// numeric strings, null and garbage are all accepted and anything that does
// not parse becomes zero.
type Amount struct {
	decimal.Decimal
}

// Zero is the zero Amount.
var Zero = Amount{}

// NewAmount wraps a float value.
func NewAmount(v float64) Amount {
	return Amount{decimal.NewFromFloat(v)}
}

// AmountFromInt wraps an integer value.
func AmountFromInt(v int64) Amount {
	return Amount{decimal.NewFromInt(v)}
}

// AmountOf wraps a decimal value.
func AmountOf(d decimal.Decimal) Amount {
	return Amount{d}
}

// ParseAmount parses s, returning zero when s is not a number. A comma is
// the decimal separator only when s has no dot; otherwise commas group
// thousands.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero
	}
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero
	}
	return Amount{d}
}

func (a Amount) Add(b Amount) Amount { return Amount{a.Decimal.Add(b.Decimal)} }
func (a Amount) Sub(b Amount) Amount { return Amount{a.Decimal.Sub(b.Decimal)} }
func (a Amount) Mul(b Amount) Amount { return Amount{a.Decimal.Mul(b.Decimal)} }

// Times multiplies by an integer count, e.g. a nightly rate by nights.
func (a Amount) Times(n int) Amount {
	return Amount{a.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

func (a Amount) Equal(b Amount) bool { return a.Decimal.Equal(b.Decimal) }

// Float returns the nearest float64, for display and spreadsheets.
func (a Amount) Float() float64 {
	return a.Decimal.InexactFloat64()
}

// MarshalJSON emits a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON implements lenient decoding.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*a = Zero
		return nil
	}
	*a = ParseAmount(strings.Trim(string(raw), `"`))
	return nil
}
