package bridge

import (
	"errors"

	"github.com/defibasket/basket"
)

// Failing is a test double that always fails with the given reason,
// exercising the engine's abort path without a real protocol.
type Failing struct {
	Reason string
}

func (f *Failing) Execute(basket.BalanceReader, basket.Action, basket.Amount) (basket.ActionResult, error) {
	return basket.ActionResult{}, errors.New(f.Reason)
}
