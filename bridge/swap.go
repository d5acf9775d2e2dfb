package bridge

import (
	"fmt"

	"github.com/defibasket/basket"
	"github.com/shopspring/decimal"
)

// Quoter answers how many whole units of out one whole unit of in buys, plus
// the fee taken in basis points.
type Quoter interface {
	Quote(in, out basket.AssetID) (rate decimal.Decimal, feeBps int64, err error)
}

// Swap trades the resolved input amount for the output asset named by the
// action's "out" parameter, at the quoter's fixed rate. Out-amounts are
// floored into smallest units; rate math stays in decimals, ledger amounts
// stay integers.
type Swap struct {
	Quoter Quoter
}

func (s *Swap) Execute(_ basket.BalanceReader, action basket.Action, amountIn basket.Amount) (basket.ActionResult, error) {
	out := basket.AssetID(action.Param("out"))
	if out == "" {
		return basket.ActionResult{}, fmt.Errorf("swap needs an %q parameter", "out")
	}
	if amountIn.IsZero() {
		return basket.ActionResult{}, fmt.Errorf("nothing to swap: resolved input of %q is zero", action.AssetIn)
	}

	rate, feeBps, err := s.Quoter.Quote(action.AssetIn, out)
	if err != nil {
		return basket.ActionResult{}, err
	}

	gross := amountIn.Decimal().Mul(rate)
	fee := gross.Mul(decimal.New(feeBps, -4))
	amountOut, err := basket.AmountFromDecimal(gross.Sub(fee))
	if err != nil {
		return basket.ActionResult{}, fmt.Errorf("swap output out of range: %w", err)
	}
	if amountOut.IsZero() {
		return basket.ActionResult{}, fmt.Errorf("swap of %s %q yields zero %q", amountIn, action.AssetIn, out)
	}

	return basket.ActionResult{Deltas: []basket.Delta{
		basket.Consumed(action.AssetIn, amountIn),
		basket.Produced(out, amountOut),
	}}, nil
}

// pair keys the rate table.
type pair struct {
	in, out basket.AssetID
}

type quote struct {
	rate   decimal.Decimal
	feeBps int64
}

// RateTable is a fixed in-memory Quoter, resolved from configuration at
// startup.
type RateTable struct {
	quotes map[pair]quote
}

// NewRateTable creates an empty table.
func NewRateTable() *RateTable {
	return &RateTable{quotes: make(map[pair]quote)}
}

// Set installs the quote for one directed pair.
func (t *RateTable) Set(in, out basket.AssetID, rate decimal.Decimal, feeBps int64) {
	t.quotes[pair{in, out}] = quote{rate: rate, feeBps: feeBps}
}

func (t *RateTable) Quote(in, out basket.AssetID) (decimal.Decimal, int64, error) {
	q, ok := t.quotes[pair{in, out}]
	if !ok {
		return decimal.Zero, 0, fmt.Errorf("no route from %q to %q", in, out)
	}
	return q.rate, q.feeBps, nil
}
