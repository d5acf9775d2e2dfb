package basket

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// BalanceReader is the read-only view of a ledger that bridge handlers
// receive. A handler may inspect balances to discover a prior step's output
// precisely, but must never mutate the ledger directly; all effects flow
// through the deltas it returns.
type BalanceReader interface {
	// Get returns the current balance of an asset, zero if never seen.
	Get(asset AssetID) Amount
}

// Ledger is the mutable balance table of exactly one basket.
//
// Every balance is a non-negative smallest-unit amount; an asset absent from
// the table is defined to have balance zero. A fully withdrawn ledger is a
// valid zero-balance ledger, not a deleted one.
type Ledger struct {
	balances map[AssetID]Amount
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{balances: make(map[AssetID]Amount)}
}

// Get returns the current balance of an asset, zero if never seen. It has no
// side effects and never fails.
func (l *Ledger) Get(asset AssetID) Amount { return l.balances[asset] }

// Credit adds amount to the asset's balance. It fails with ErrInvalidAmount
// when the new balance would not fit in 256 bits.
func (l *Ledger) Credit(asset AssetID, amount Amount) error {
	sum, ok := l.balances[asset].Add(amount)
	if !ok {
		return fmt.Errorf("credit %s to %q overflows: %w", amount, asset, ErrInvalidAmount)
	}
	l.balances[asset] = sum
	return nil
}

// Debit removes amount from the asset's balance. It fails with
// ErrInsufficientBalance, leaving the balance unchanged, when amount exceeds
// the current balance.
func (l *Ledger) Debit(asset AssetID, amount Amount) error {
	diff, ok := l.balances[asset].Sub(amount)
	if !ok {
		return fmt.Errorf("debit %s from %q (balance %s): %w",
			amount, asset, l.balances[asset], ErrInsufficientBalance)
	}
	l.balances[asset] = diff
	return nil
}

// PercentOf resolves p against the live balance of asset, the single most
// important numeric routine in the runtime: floor(balance*p/100000) on
// integers, with an exact result at 100%. The balance consulted is always
// the current one, never a value cached before a script began.
func (l *Ledger) PercentOf(asset AssetID, p Percent) (Amount, error) {
	if !p.Valid() {
		return Amount{}, fmt.Errorf("percentage %d exceeds 100%%: %w", p, ErrInvalidAmount)
	}
	return l.balances[asset].Percent(p), nil
}

// Apply commits a handler's deltas as one unit: either every delta lands on
// the ledger or none does. A delta that would drive a balance negative fails
// the whole application with ErrInsufficientBalance.
func (l *Ledger) Apply(deltas []Delta) error {
	staged := l.Clone()
	for _, d := range deltas {
		var err error
		if d.Debit {
			err = staged.Debit(d.Asset, d.Amount)
		} else {
			err = staged.Credit(d.Asset, d.Amount)
		}
		if err != nil {
			return err
		}
	}
	l.balances = staged.balances
	return nil
}

// Clone returns an independent copy of the ledger, used for staging and for
// dry-run simulations.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{balances: maps.Clone(l.balances)}
}

// Assets iterates over the ledger's entries in asset-id order, zero balances
// included.
func (l *Ledger) Assets() iter.Seq2[AssetID, Amount] {
	return func(yield func(AssetID, Amount) bool) {
		ids := slices.Collect(maps.Keys(l.balances))
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(id, l.balances[id]) {
				return
			}
		}
	}
}
