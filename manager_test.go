package basket

import (
	"errors"
	"testing"
)

const (
	alice Address = "0xalice"
	bob   Address = "0xbob"
)

// recordingSink captures payouts for assertions.
type recordingSink struct {
	payouts []Delta
	to      []Address
}

func (s *recordingSink) Pay(recipient Address, asset AssetID, amount Amount) error {
	s.payouts = append(s.payouts, Consumed(asset, amount))
	s.to = append(s.to, recipient)
	return nil
}

func newTestManager(t *testing.T) (*Manager, *recordingSink) {
	t.Helper()
	registry := NewRegistry()
	registry.Register("mint-y", mint("Y", 500))
	registry.Register("to-y", convert("Y"))
	sink := &recordingSink{}
	return NewManager(NewEngine(registry), nil, sink), sink
}

func TestManager_Create_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		assets  []AssetID
		amounts []Amount
		native  Amount
		script  Script
		wantErr error
	}{
		{
			name:    "mismatched assets and amounts",
			assets:  []AssetID{"usdc", "dai"},
			amounts: []Amount{A(100)},
			native:  A(1),
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "mismatched bridges and calls",
			assets:  []AssetID{"usdc"},
			amounts: []Amount{A(100)},
			script:  Script{Bridges: []BridgeID{"mint-y"}, Calls: nil},
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "zero token amount rejected even with native funds",
			assets:  []AssetID{"usdc"},
			amounts: []Amount{A(0)},
			native:  A(1000),
			wantErr: ErrZeroAmount,
		},
		{
			name:    "no funds at all",
			wantErr: ErrNoFundsProvided,
		},
		{
			name:    "native only is enough",
			native:  A(1000),
			wantErr: nil,
		},
		{
			name:    "tokens only is enough",
			assets:  []AssetID{"usdc"},
			amounts: []Amount{A(100)},
			wantErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			_, err := m.Create(alice, tc.assets, tc.amounts, tc.native, tc.script)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Create error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestManager_Create_FundsAndRuns(t *testing.T) {
	m, _ := newTestManager(t)

	id, err := m.Create(alice, []AssetID{"usdc"}, []Amount{A(2000)}, A(100), Script{
		Bridges: []BridgeID{"to-y"},
		Calls:   []Call{{AssetIn: "usdc", PercentIn: 50_000}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("first basket id = %d, want 0", id)
	}

	b, err := m.Basket(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.Balance(Native); !got.Equal(A(100)) {
		t.Errorf("native balance = %s, want 100", got)
	}
	if got := b.Balance("usdc"); !got.Equal(A(1000)) {
		t.Errorf("usdc balance = %s, want 1000 (half converted)", got)
	}
	if got := b.Balance("Y"); !got.Equal(A(1000)) {
		t.Errorf("Y balance = %s, want 1000", got)
	}
	if b.Owner() != alice {
		t.Errorf("owner = %s, want %s", b.Owner(), alice)
	}
	if b.Wallet() == "" {
		t.Error("wallet handle not allocated")
	}
}

func TestManager_IDs_Monotonic(t *testing.T) {
	m, _ := newTestManager(t)
	for want := BasketID(0); want < 3; want++ {
		id, err := m.Create(alice, nil, nil, A(1), Script{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != want {
			t.Errorf("basket id = %d, want %d", id, want)
		}
	}
}

func TestManager_Ownership(t *testing.T) {
	m, _ := newTestManager(t)
	id, err := m.Create(alice, nil, nil, A(1000), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edit := Script{
		Bridges: []BridgeID{"mint-y"},
		Calls:   []Call{{AssetIn: Native}},
	}

	testCases := []struct {
		name string
		call func() error
	}{
		{"deposit", func() error { return m.Deposit(id, bob, nil, nil, A(5), Script{}) }},
		{"edit", func() error { return m.Edit(id, bob, edit) }},
		{"withdraw", func() error { return m.Withdraw(id, bob, nil, nil, FullPercent, Script{}) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, ErrNotOwner) {
				t.Fatalf("%s by non-owner error = %v, want ErrNotOwner", tc.name, err)
			}
		})
	}

	// the ledger stayed untouched throughout
	b, _ := m.Basket(id)
	if got := b.Balance(Native); !got.Equal(A(1000)) {
		t.Errorf("native balance after rejected calls = %s, want 1000", got)
	}
	if got := b.Balance("Y"); !got.IsZero() {
		t.Errorf("Y balance after rejected calls = %s, want 0", got)
	}
}

func TestManager_UnknownBasket(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Edit(42, alice, Script{}); !errors.Is(err, ErrUnknownBasket) {
		t.Errorf("Edit on missing basket error = %v, want ErrUnknownBasket", err)
	}
}

func TestManager_Deposit(t *testing.T) {
	m, _ := newTestManager(t)
	id, err := m.Create(alice, nil, nil, A(100), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = m.Deposit(id, alice, []AssetID{"dai"}, []Amount{A(300)}, A(50), Script{
		Bridges: []BridgeID{"to-y"},
		Calls:   []Call{{AssetIn: "dai", PercentIn: FullPercent}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := m.Basket(id)
	if got := b.Balance(Native); !got.Equal(A(150)) {
		t.Errorf("native balance = %s, want 150", got)
	}
	if got := b.Balance("dai"); !got.IsZero() {
		t.Errorf("dai balance = %s, want 0 (all converted)", got)
	}
	if got := b.Balance("Y"); !got.Equal(A(300)) {
		t.Errorf("Y balance = %s, want 300", got)
	}
}

func TestManager_Withdraw(t *testing.T) {
	m, sink := newTestManager(t)
	id, err := m.Create(alice, []AssetID{"Y"}, []Amount{A(800)}, A(400), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the script runs first: convert usdc-free basket is irrelevant here,
	// request 500 Y out plus 50% of the native balance.
	err = m.Withdraw(id, alice, []AssetID{"Y"}, []Amount{A(500)}, 50_000, Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, _ := m.Basket(id)
	if got := b.Balance("Y"); !got.Equal(A(300)) {
		t.Errorf("Y balance = %s, want 300", got)
	}
	if got := b.Balance(Native); !got.Equal(A(200)) {
		t.Errorf("native balance = %s, want 200", got)
	}

	if len(sink.payouts) != 2 {
		t.Fatalf("got %d payouts, want 2", len(sink.payouts))
	}
	if sink.payouts[0].Asset != "Y" || !sink.payouts[0].Amount.Equal(A(500)) {
		t.Errorf("payout 1 = %s %q, want 500 Y", sink.payouts[0].Amount, sink.payouts[0].Asset)
	}
	if sink.payouts[1].Asset != Native || !sink.payouts[1].Amount.Equal(A(200)) {
		t.Errorf("payout 2 = %s %q, want 200 native", sink.payouts[1].Amount, sink.payouts[1].Asset)
	}
	for _, recipient := range sink.to {
		if recipient != alice {
			t.Errorf("payout recipient = %s, want %s", recipient, alice)
		}
	}
}

func TestManager_Withdraw_Validation(t *testing.T) {
	m, _ := newTestManager(t)
	id, err := m.Create(alice, nil, nil, A(1000), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testCases := []struct {
		name    string
		assets  []AssetID
		amounts []Amount
		percent Percent
		wantErr error
	}{
		{name: "nothing requested", wantErr: ErrNoFundsProvided},
		{name: "zero output amount", assets: []AssetID{"Y"}, amounts: []Amount{A(0)}, percent: FullPercent, wantErr: ErrZeroAmount},
		{name: "mismatched outputs", assets: []AssetID{"Y", "Z"}, amounts: []Amount{A(1)}, wantErr: ErrLengthMismatch},
		{name: "percentage beyond 100%", percent: FullPercent + 1, wantErr: ErrInvalidAmount},
		{name: "more than held", assets: []AssetID{"Y"}, amounts: []Amount{A(1)}, wantErr: ErrInsufficientBalance},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := m.Withdraw(id, alice, tc.assets, tc.amounts, tc.percent, Script{})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Withdraw error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestManager_Withdraw_Everything(t *testing.T) {
	// a fully-withdrawn basket remains usable with a zero-balance ledger.
	m, _ := newTestManager(t)
	id, err := m.Create(alice, nil, nil, A(1000), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Withdraw(id, alice, nil, nil, FullPercent, Script{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := m.Basket(id)
	if got := b.Balance(Native); !got.IsZero() {
		t.Errorf("native balance = %s, want 0", got)
	}
	// still accepts deposits
	if err := m.Deposit(id, alice, nil, nil, A(7), Script{}); err != nil {
		t.Fatalf("deposit after full withdrawal: %v", err)
	}
}

// oracleFunc adapts a function to OwnershipOracle.
type oracleFunc func(BasketID) (Address, error)

func (f oracleFunc) OwnerOf(id BasketID) (Address, error) { return f(id) }

func TestManager_ExternalOracle(t *testing.T) {
	// an injected oracle overrides the creation record, modeling an external
	// ownership transfer.
	registry := NewRegistry()
	m := NewManager(NewEngine(registry), oracleFunc(func(BasketID) (Address, error) {
		return bob, nil
	}), nil)

	id, err := m.Create(alice, nil, nil, A(10), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Edit(id, alice, Script{}); !errors.Is(err, ErrNotOwner) {
		t.Errorf("edit by original owner after transfer error = %v, want ErrNotOwner", err)
	}
	if err := m.Edit(id, bob, Script{}); err != nil {
		t.Errorf("edit by transferred owner: unexpected error %v", err)
	}
}

func TestManager_Simulate(t *testing.T) {
	m, _ := newTestManager(t)
	id, err := m.Create(alice, nil, nil, A(1000), Script{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balances, err := m.Simulate(id, Script{
		Bridges: []BridgeID{"to-y"},
		Calls:   []Call{{AssetIn: Native, PercentIn: FullPercent}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := balances["Y"]; !got.Equal(A(1000)) {
		t.Errorf("simulated Y balance = %s, want 1000", got)
	}
	if got := balances[Native]; !got.IsZero() {
		t.Errorf("simulated native balance = %s, want 0", got)
	}

	// the basket itself is untouched
	b, _ := m.Basket(id)
	if got := b.Balance(Native); !got.Equal(A(1000)) {
		t.Errorf("native balance after simulate = %s, want 1000", got)
	}
	if got := b.Balance("Y"); !got.IsZero() {
		t.Errorf("Y balance after simulate = %s, want 0", got)
	}
}

func TestManager_Baskets_ConcurrentCreate(t *testing.T) {
	m, _ := newTestManager(t)
	for range 8 {
		if _, err := m.Create(alice, nil, nil, A(1), Script{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			if _, err := m.Create(alice, nil, nil, A(1), Script{}); err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
		}
	}()

	for range 100 {
		prev := BasketID(0)
		first := true
		for b := range m.Baskets() {
			if !first && b.ID() <= prev {
				t.Fatalf("ids out of order: %d after %d", b.ID(), prev)
			}
			prev, first = b.ID(), false
		}
	}
	<-done
}
