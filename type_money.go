package etfmon

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the reporting currency of the monitored funds.
// Provider payloads report notional amounts without a currency tag.
const DefaultCurrency = "TWD"

// Money represents a notional monetary value (the `amount` column of a
// holdings row).
type Money struct {
	value decimal.Decimal // major units
	cur   string
}

// M is a convenient factory for Money.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Money{value: v, cur: currency}
	case float64:
		return Money{value: decimal.NewFromFloat(v), cur: currency}
	case int:
		return Money{value: decimal.NewFromInt(int64(v)), cur: currency}
	case int64:
		return Money{value: decimal.NewFromInt(v), cur: currency}
	default:
		panic("unsupported type")
	}
}

// ParseMoney parses a notional amount from its plain decimal string
// form, in the given currency.
func ParseMoney(str, currency string) (Money, error) {
	v, err := decimal.NewFromString(str)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns a never-nil go-money currency for formatting.
func (m Money) currency() *money.Currency {
	return money.New(0, m.cur).Currency()
}

func (m Money) Currency() string     { return m.cur }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Add(n Money) Money    { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) Sub(n Money) Money    { return Money{value: m.value.Sub(n.value), cur: m.cur} }

// Text returns the plain decimal form, the one persisted in snapshots.
func (m Money) Text() string { return m.value.String() }

// String returns the locale-formatted form (thousands separators and
// currency symbol) used in rendered reports.
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
