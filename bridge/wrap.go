package bridge

import (
	"fmt"

	"github.com/defibasket/basket"
)

// Wrap converts the native currency into its wrapped token 1:1. A resolved
// amount of zero is a no-op, the usual first step of a script that holds no
// native currency.
type Wrap struct {
	Wrapped basket.AssetID
}

func (w *Wrap) Execute(_ basket.BalanceReader, action basket.Action, amountIn basket.Amount) (basket.ActionResult, error) {
	if action.AssetIn != basket.Native {
		return basket.ActionResult{}, fmt.Errorf("wrap takes %q, got %q", basket.Native, action.AssetIn)
	}
	if amountIn.IsZero() {
		return basket.ActionResult{}, nil
	}
	return basket.ActionResult{Deltas: []basket.Delta{
		basket.Consumed(basket.Native, amountIn),
		basket.Produced(w.Wrapped, amountIn),
	}}, nil
}

// Unwrap converts the wrapped token back to native currency 1:1.
type Unwrap struct {
	Wrapped basket.AssetID
}

func (u *Unwrap) Execute(_ basket.BalanceReader, action basket.Action, amountIn basket.Amount) (basket.ActionResult, error) {
	if action.AssetIn != u.Wrapped {
		return basket.ActionResult{}, fmt.Errorf("unwrap takes %q, got %q", u.Wrapped, action.AssetIn)
	}
	if amountIn.IsZero() {
		return basket.ActionResult{}, nil
	}
	return basket.ActionResult{Deltas: []basket.Delta{
		basket.Consumed(u.Wrapped, amountIn),
		basket.Produced(basket.Native, amountIn),
	}}, nil
}
