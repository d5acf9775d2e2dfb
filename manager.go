package basket

import (
	"cmp"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"sync"
)

// BasketID identifies one basket. Ids are assigned at creation starting at 0,
// increment by 1, and are never reused.
type BasketID uint64

// OwnershipOracle resolves the current owner of a basket. The backing
// NFT/registry mechanics live outside this runtime; when no oracle is
// injected the manager falls back to the owner recorded at creation.
type OwnershipOracle interface {
	OwnerOf(id BasketID) (Address, error)
}

// PayoutSink moves withdrawn assets out of a basket to their recipient. The
// settlement mechanism itself is outside this runtime.
type PayoutSink interface {
	Pay(recipient Address, asset AssetID, amount Amount) error
}

// Basket is one basket instance: an owner record, a wallet handle and the
// exclusively-owned ledger.
type Basket struct {
	id     BasketID
	owner  Address
	wallet Address
	ledger *Ledger

	// mu serializes all operations against this basket, preserving the
	// live-balance-at-each-step invariant. Cross-basket operations are
	// independent.
	mu sync.Mutex
}

func (b *Basket) ID() BasketID    { return b.id }
func (b *Basket) Owner() Address  { return b.owner }
func (b *Basket) Wallet() Address { return b.wallet }

// Balance returns the basket's current balance of one asset.
func (b *Basket) Balance(asset AssetID) Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Get(asset)
}

// Balances returns a stable snapshot of the basket's ledger.
func (b *Basket) Balances() map[AssetID]Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.ledger.balances)
}

// Manager owns all baskets and exposes the four public operations. Each
// operation validates its direct inputs before any balance is touched, then
// delegates script execution to the engine.
type Manager struct {
	mu      sync.Mutex // guards baskets and next
	baskets map[BasketID]*Basket
	next    BasketID

	engine *Engine
	oracle OwnershipOracle
	sink   PayoutSink
}

// NewManager creates a manager executing through engine. oracle may be nil
// to use the manager's own ownership records; sink may be nil to log and
// discard payouts.
func NewManager(engine *Engine, oracle OwnershipOracle, sink PayoutSink) *Manager {
	if sink == nil {
		sink = discardSink{}
	}
	return &Manager{
		baskets: make(map[BasketID]*Basket),
		engine:  engine,
		oracle:  oracle,
		sink:    sink,
	}
}

// discardSink stands in when no settlement layer is attached.
type discardSink struct{}

func (discardSink) Pay(recipient Address, asset AssetID, amount Amount) error {
	log.Printf("payout %s %q to %s (no sink attached)", amount, asset, recipient)
	return nil
}

// Engine returns the manager's execution engine.
func (m *Manager) Engine() *Engine { return m.engine }

// Basket returns a basket by id, failing with ErrUnknownBasket.
func (m *Manager) Basket(id BasketID) (*Basket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.baskets[id]
	if !ok {
		return nil, fmt.Errorf("basket %d: %w", id, ErrUnknownBasket)
	}
	return b, nil
}

// Baskets iterates over a snapshot of all baskets in id order. Baskets
// created during the iteration are not seen.
func (m *Manager) Baskets() iter.Seq[*Basket] {
	return func(yield func(*Basket) bool) {
		m.mu.Lock()
		baskets := slices.Collect(maps.Values(m.baskets))
		m.mu.Unlock()
		slices.SortFunc(baskets, func(a, b *Basket) int {
			return cmp.Compare(a.id, b.id)
		})
		for _, b := range baskets {
			if !yield(b) {
				return
			}
		}
	}
}

// ownerOf consults the oracle when one is injected, the creation record
// otherwise. External transfers are the oracle's concern.
func (m *Manager) ownerOf(b *Basket) (Address, error) {
	if m.oracle != nil {
		return m.oracle.OwnerOf(b.id)
	}
	return b.owner, nil
}

// authorize fails with ErrNotOwner unless caller currently owns the basket.
func (m *Manager) authorize(b *Basket, caller Address) error {
	owner, err := m.ownerOf(b)
	if err != nil {
		return fmt.Errorf("resolving owner of basket %d: %w", b.id, err)
	}
	if caller != owner {
		return fmt.Errorf("caller %s on basket %d: %w", caller, b.id, ErrNotOwner)
	}
	return nil
}

// validateFunds enforces the shared input rules of Create and Deposit: paired
// slices, strictly positive token amounts, and at least some funds. The
// zero-amount check runs before the no-funds check, uniformly.
func validateFunds(assets []AssetID, amounts []Amount, native Amount) error {
	if len(assets) != len(amounts) {
		return fmt.Errorf("%d assets for %d amounts: %w", len(assets), len(amounts), ErrLengthMismatch)
	}
	for i, amount := range amounts {
		if amount.IsZero() {
			return fmt.Errorf("asset %q at index %d: %w", assets[i], i, ErrZeroAmount)
		}
	}
	if native.IsZero() && len(assets) == 0 {
		return ErrNoFundsProvided
	}
	return nil
}

// validateOutputs enforces the input rules of Withdraw.
func validateOutputs(assets []AssetID, amounts []Amount, nativePercent Percent) error {
	if len(assets) != len(amounts) {
		return fmt.Errorf("%d assets for %d amounts: %w", len(assets), len(amounts), ErrLengthMismatch)
	}
	for i, amount := range amounts {
		if amount.IsZero() {
			return fmt.Errorf("asset %q at index %d: %w", assets[i], i, ErrZeroAmount)
		}
	}
	if !nativePercent.Valid() {
		return fmt.Errorf("native percentage %d exceeds 100%%: %w", nativePercent, ErrInvalidAmount)
	}
	if nativePercent.IsZero() && len(assets) == 0 {
		return fmt.Errorf("no outputs requested: %w", ErrNoFundsProvided)
	}
	return nil
}

// fund credits the concrete inputs of a create or deposit onto the ledger.
func fund(l *Ledger, assets []AssetID, amounts []Amount, native Amount) error {
	if !native.IsZero() {
		if err := l.Credit(Native, native); err != nil {
			return err
		}
	}
	for i, asset := range assets {
		if err := l.Credit(asset, amounts[i]); err != nil {
			return err
		}
	}
	return nil
}

// Create allocates a new basket owned by owner, credits the native and token
// inputs, and runs the script over the fresh ledger.
//
// When the script aborts mid-way the basket still exists with the effects of
// the funding and of the successful steps applied, matching the one-call-per-
// bridge model where earlier external effects cannot be rolled back; the
// returned id is valid alongside the error.
func (m *Manager) Create(owner Address, assets []AssetID, amounts []Amount, native Amount, script Script) (BasketID, error) {
	if err := validateFunds(assets, amounts, native); err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}
	actions, err := script.Actions()
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}

	m.mu.Lock()
	id := m.next
	m.next++
	b := &Basket{id: id, owner: owner, wallet: NewWalletAddress(), ledger: NewLedger()}
	m.baskets[id] = b
	m.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := fund(b.ledger, assets, amounts, native); err != nil {
		return id, fmt.Errorf("create basket %d: %w", id, err)
	}
	if err := m.engine.Run(b.ledger, actions); err != nil {
		return id, fmt.Errorf("create basket %d: %w", id, err)
	}
	return id, nil
}

// Deposit credits additional funds into an existing basket and runs the
// script. Only the basket's current owner may deposit.
func (m *Manager) Deposit(id BasketID, caller Address, assets []AssetID, amounts []Amount, native Amount, script Script) error {
	if err := validateFunds(assets, amounts, native); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	actions, err := script.Actions()
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	b, err := m.Basket(id)
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	if err := m.authorize(b, caller); err != nil {
		return fmt.Errorf("deposit: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := fund(b.ledger, assets, amounts, native); err != nil {
		return fmt.Errorf("deposit into basket %d: %w", id, err)
	}
	if err := m.engine.Run(b.ledger, actions); err != nil {
		return fmt.Errorf("deposit into basket %d: %w", id, err)
	}
	return nil
}

// Edit runs a script against an existing basket without moving funds in or
// out, rebalancing what the wallet already holds.
func (m *Manager) Edit(id BasketID, caller Address, script Script) error {
	actions, err := script.Actions()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	b, err := m.Basket(id)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	if err := m.authorize(b, caller); err != nil {
		return fmt.Errorf("edit: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := m.engine.Run(b.ledger, actions); err != nil {
		return fmt.Errorf("edit basket %d: %w", id, err)
	}
	return nil
}

// Simulate runs a script against a copy of the basket's ledger and returns
// the balances it would leave. The basket itself is never modified, so
// anyone may simulate, not just the owner.
func (m *Manager) Simulate(id BasketID, script Script) (map[AssetID]Amount, error) {
	actions, err := script.Actions()
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	b, err := m.Basket(id)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	b.mu.Lock()
	scratch := b.ledger.Clone()
	b.mu.Unlock()
	if err := m.engine.Run(scratch, actions); err != nil {
		return nil, fmt.Errorf("simulate on basket %d: %w", id, err)
	}
	return scratch.balances, nil
}

// Withdraw runs the script first, letting it convert held assets into the
// requested output assets, then debits the requested token amounts and the
// native percentage and pays them out to the caller.
func (m *Manager) Withdraw(id BasketID, caller Address, assets []AssetID, amounts []Amount, nativePercent Percent, script Script) error {
	if err := validateOutputs(assets, amounts, nativePercent); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	actions, err := script.Actions()
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	b, err := m.Basket(id)
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	if err := m.authorize(b, caller); err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := m.engine.Run(b.ledger, actions); err != nil {
		return fmt.Errorf("withdraw from basket %d: %w", id, err)
	}
	for i, asset := range assets {
		if err := b.ledger.Debit(asset, amounts[i]); err != nil {
			return fmt.Errorf("withdraw from basket %d: %w", id, err)
		}
		if err := m.sink.Pay(caller, asset, amounts[i]); err != nil {
			return fmt.Errorf("withdraw from basket %d: payout %q: %w", id, asset, err)
		}
	}
	if !nativePercent.IsZero() {
		amount, err := b.ledger.PercentOf(Native, nativePercent)
		if err != nil {
			return fmt.Errorf("withdraw from basket %d: %w", id, err)
		}
		if !amount.IsZero() {
			if err := b.ledger.Debit(Native, amount); err != nil {
				return fmt.Errorf("withdraw from basket %d: %w", id, err)
			}
			if err := m.sink.Pay(caller, Native, amount); err != nil {
				return fmt.Errorf("withdraw from basket %d: payout native: %w", id, err)
			}
		}
	}
	return nil
}
