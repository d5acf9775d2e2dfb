package basket

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Amount is an unsigned token quantity in the asset's smallest unit.
// All balance arithmetic is exact 256-bit integer arithmetic; floating point
// never enters the ledger.
type Amount struct {
	value uint256.Int
}

// A is a convenient factory for small amounts, mostly used in tests.
func A(v uint64) Amount { return Amount{value: *uint256.NewInt(v)} }

// ParseAmount parses a base-10 smallest-unit amount.
func ParseAmount(s string) (Amount, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: *v}, nil
}

// Add returns a+b, with ok false on 256-bit overflow.
func (a Amount) Add(b Amount) (sum Amount, ok bool) {
	_, overflow := sum.value.AddOverflow(&a.value, &b.value)
	return sum, !overflow
}

// Sub returns a-b, with ok false when b exceeds a.
func (a Amount) Sub(b Amount) (diff Amount, ok bool) {
	_, underflow := diff.value.SubOverflow(&a.value, &b.value)
	return diff, !underflow
}

func (a Amount) Equal(b Amount) bool    { return a.value.Eq(&b.value) }
func (a Amount) LessThan(b Amount) bool { return a.value.Lt(&b.value) }
func (a Amount) IsZero() bool           { return a.value.IsZero() }
func (a Amount) String() string         { return a.value.Dec() }

// Percent returns floor(a*p/100000). An exact 100% short-circuits to the full
// amount so the upper bound never loses dust to truncation.
func (a Amount) Percent(p Percent) Amount {
	if p >= FullPercent {
		return a
	}
	var out Amount
	// 512-bit intermediate, the product cannot overflow before the division.
	out.value.MulDivOverflow(&a.value, uint256.NewInt(uint64(p)), uint256.NewInt(uint64(FullPercent)))
	return out
}

// Decimal returns the amount as an exact decimal integer, for pricing and
// display only, never for balance math.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.value.ToBig(), 0)
}

// AmountFromDecimal floors d into a smallest-unit amount. It fails on
// negative values and on amounts beyond 256 bits.
func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("amount %s is negative: %w", d, ErrInvalidAmount)
	}
	v, overflow := uint256.FromBig(d.Floor().BigInt())
	if overflow {
		return Amount{}, fmt.Errorf("amount %s exceeds 256 bits: %w", d, ErrInvalidAmount)
	}
	return Amount{value: *v}, nil
}

// MarshalJSON encodes the amount as a quoted base-10 string so that journal
// lines stay readable and safe for arbitrary-precision values.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(a.value.Dec())), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		// tolerate bare numbers from hand-written journals
		s = string(data)
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
