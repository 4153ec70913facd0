// Package money provides exact currency arithmetic on integer minor units.
//
// Amounts are held as an int64 count of minor units (cents) and only converted
// to and from decimal strings at the boundary. All arithmetic is overflow
// checked; nothing here ever goes through binary floating point.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by a Money value.
const Scale = 2

var (
	// ErrInvalidAmount is returned for malformed, negative or over-precise amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrOverflow is returned when an operation leaves the int64 range.
	ErrOverflow = errors.New("money overflow")

	// ErrPrecisionOverflow is returned when an amount cannot be split into the
	// requested shares without losing minor units.
	ErrPrecisionOverflow = errors.New("precision overflow")
)

// Money is an amount of currency in minor units.
// The zero value is zero.
type Money struct {
	minor int64
}

// Zero is the zero amount.
var Zero = Money{}

// FromMinorUnits returns the amount holding exactly minor minor units.
func FromMinorUnits(minor int64) Money {
	return Money{minor: minor}
}

// FromDecimalString parses a non-negative decimal string such as "10", "3.5"
// or "1234.56". More than two fractional digits, exponent notation, signs,
// a bare leading or trailing dot and non-numeric input fail with
// ErrInvalidAmount.
func FromDecimalString(s string) (Money, error) {
	return parse(s, false)
}

// FromPositiveDecimalString is FromDecimalString for amounts that must be
// greater than zero, such as expense and settlement amounts.
func FromPositiveDecimalString(s string) (Money, error) {
	m, err := parse(s, false)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, s)
	}
	return m, nil
}

func parse(s string, allowNegative bool) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	body := s
	if allowNegative {
		body = strings.TrimPrefix(body, "-")
	}
	for _, r := range body {
		if (r < '0' || r > '9') && r != '.' {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	if strings.HasPrefix(body, ".") || strings.HasSuffix(body, ".") {
		return Money{}, fmt.Errorf("%w: %q needs digits on both sides of the dot", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Exponent() < -Scale {
		return Money{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, s, Scale)
	}

	minor := d.Shift(Scale).BigInt()
	if !minor.IsInt64() {
		return Money{}, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}
	return Money{minor: minor.Int64()}, nil
}

// MinorUnits returns the amount as a count of minor units.
func (m Money) MinorUnits() int64 {
	return m.minor
}

// String formats the amount with exactly two fractional digits, e.g. "-10.50".
func (m Money) String() string {
	return decimal.New(m.minor, -Scale).StringFixed(Scale)
}

// Add returns m + o.
func (m Money) Add(o Money) (Money, error) {
	sum := m.minor + o.minor
	if (o.minor > 0 && sum < m.minor) || (o.minor < 0 && sum > m.minor) {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrOverflow, m, o)
	}
	return Money{minor: sum}, nil
}

// Subtract returns m - o.
func (m Money) Subtract(o Money) (Money, error) {
	diff := m.minor - o.minor
	if (o.minor > 0 && diff > m.minor) || (o.minor < 0 && diff < m.minor) {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrOverflow, m, o)
	}
	return Money{minor: diff}, nil
}

// Negate returns -m.
func (m Money) Negate() (Money, error) {
	if m.minor == math.MinInt64 {
		return Money{}, fmt.Errorf("%w: cannot negate %s", ErrOverflow, m)
	}
	return Money{minor: -m.minor}, nil
}

// Abs returns |m|. The most negative int64 has no absolute value and is
// returned unchanged.
func (m Money) Abs() Money {
	if m.minor < 0 && m.minor != math.MinInt64 {
		return Money{minor: -m.minor}
	}
	return m
}

// Compare returns -1, 0 or +1 as m is less than, equal to or greater than o.
func (m Money) Compare(o Money) int {
	switch {
	case m.minor < o.minor:
		return -1
	case m.minor > o.minor:
		return 1
	default:
		return 0
	}
}

// Sign returns -1, 0 or +1.
func (m Money) Sign() int {
	return m.Compare(Zero)
}

// IsZero reports whether m is zero.
func (m Money) IsZero() bool {
	return m.minor == 0
}

// IsPositive reports whether m is greater than zero.
func (m Money) IsPositive() bool {
	return m.minor > 0
}

// DivideEvenly splits m into n shares whose sum is exactly m.
//
// Each share gets m/n minor units and the remainder is handed out one minor
// unit at a time to the first shares, so 10.00 split three ways is
// [3.34, 3.33, 3.33]. Callers that need a stable assignment must order the
// shares themselves before calling.
func (m Money) DivideEvenly(n int) ([]Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cannot split %s into %d shares", ErrPrecisionOverflow, m, n)
	}
	if m.minor < 0 {
		return nil, fmt.Errorf("%w: cannot split negative amount %s", ErrInvalidAmount, m)
	}

	base := m.minor / int64(n)
	remainder := m.minor % int64(n)

	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money{minor: base}
		if int64(i) < remainder {
			shares[i].minor++
		}
	}
	if err := checkSum(m, shares); err != nil {
		return nil, err
	}
	return shares, nil
}

// Allocate splits m into len(weights) shares proportional to weights using
// the largest remainder method. Every weight must be positive. Minor units
// left after flooring go to the shares with the largest fractional parts,
// earlier shares first on ties, so equal weights give the same result as
// DivideEvenly.
func (m Money) Allocate(weights []int64) ([]Money, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: cannot split %s into 0 shares", ErrPrecisionOverflow, m)
	}
	if m.minor < 0 {
		return nil, fmt.Errorf("%w: cannot split negative amount %s", ErrInvalidAmount, m)
	}

	var total uint64
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("%w: weight %d at position %d is not positive", ErrPrecisionOverflow, w, i)
		}
		var carry uint64
		total, carry = bits.Add64(total, uint64(w), 0)
		if carry != 0 || total > math.MaxInt64 {
			return nil, fmt.Errorf("%w: weights sum out of range", ErrOverflow)
		}
	}

	type part struct {
		index     int
		remainder uint64
	}
	shares := make([]Money, len(weights))
	parts := make([]part, len(weights))
	var allocated int64
	for i, w := range weights {
		// amount*w/total fits in 64 bits because w <= total.
		hi, lo := bits.Mul64(uint64(m.minor), uint64(w))
		q, r := bits.Div64(hi, lo, total)
		shares[i] = Money{minor: int64(q)}
		parts[i] = part{index: i, remainder: r}
		allocated += int64(q)
	}

	leftover := m.minor - allocated
	if leftover < 0 || leftover > int64(len(weights)) {
		return nil, fmt.Errorf("%w: %d minor units left over for %d shares", ErrPrecisionOverflow, leftover, len(weights))
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].remainder > parts[j].remainder
	})
	for i := int64(0); i < leftover; i++ {
		shares[parts[i].index].minor++
	}

	if err := checkSum(m, shares); err != nil {
		return nil, err
	}
	return shares, nil
}

func checkSum(want Money, shares []Money) error {
	var sum int64
	for _, s := range shares {
		sum += s.minor
	}
	if sum != want.minor {
		return fmt.Errorf("%w: shares sum to %d, want %d", ErrPrecisionOverflow, sum, want.minor)
	}
	return nil
}

// Sum adds all amounts.
func Sum(amounts ...Money) (Money, error) {
	total := Zero
	for _, a := range amounts {
		var err error
		if total, err = total.Add(a); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// MarshalText encodes m as its decimal string so JSON and YAML carry "10.00".
func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a decimal string. Unlike FromDecimalString it accepts
// negative values, since balances are signed.
func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := parse(string(text), true)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
