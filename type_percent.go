package basket

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a fixed-point percentage scaled by 1000: 100000 means 100.000%.
// Amounts are always resolved from a Percent by flooring, never rounding up.
type Percent uint32

// FullPercent is 100% in scaled form.
const FullPercent Percent = 100000

// Valid reports whether p lies within [0%, 100%].
func (p Percent) Valid() bool { return p <= FullPercent }

func (p Percent) IsZero() bool { return p == 0 }

func (p Percent) String() string {
	return decimal.New(int64(p), -3).String() + "%"
}

// ParsePercent parses a human form like "100", "12.5" or "0.125%" into a
// scaled Percent. More than three fractional digits is an error, the wire
// format cannot carry them.
func ParsePercent(s string) (Percent, error) {
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	scaled := d.Shift(3)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("percentage %q has more than 3 fractional digits", s)
	}
	if scaled.IsNegative() || scaled.GreaterThan(decimal.NewFromInt(int64(FullPercent))) {
		return 0, fmt.Errorf("percentage %q out of range [0%%, 100%%]", s)
	}
	return Percent(scaled.IntPart()), nil
}
