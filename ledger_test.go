package basket

import (
	"errors"
	"testing"
)

func TestLedger_PercentOf(t *testing.T) {
	testCases := []struct {
		name    string
		balance uint64
		percent Percent
		want    uint64
	}{
		{name: "100% yields exactly the balance", balance: 1_000_000, percent: FullPercent, want: 1_000_000},
		{name: "100% of an odd balance loses no dust", balance: 333, percent: FullPercent, want: 333},
		{name: "50% floors down", balance: 333, percent: 50_000, want: 166},
		{name: "0% is zero", balance: 333, percent: 0, want: 0},
		{name: "0.001% of a small balance floors to zero", balance: 333, percent: 1, want: 0},
		{name: "33.333% of 1e6", balance: 1_000_000, percent: 33_333, want: 333_330},
		{name: "unseen asset has balance zero", balance: 0, percent: FullPercent, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			if tc.balance > 0 {
				if err := l.Credit("tkn", A(tc.balance)); err != nil {
					t.Fatalf("unexpected credit error: %v", err)
				}
			}
			got, err := l.PercentOf("tkn", tc.percent)
			if err != nil {
				t.Fatalf("PercentOf(%d) unexpected error: %v", tc.percent, err)
			}
			if !got.Equal(A(tc.want)) {
				t.Errorf("PercentOf(%d) on balance %d = %s, want %d", tc.percent, tc.balance, got, tc.want)
			}
		})
	}
}

func TestLedger_PercentOf_OutOfRange(t *testing.T) {
	l := NewLedger()
	if _, err := l.PercentOf("tkn", FullPercent+1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("PercentOf(100001) error = %v, want ErrInvalidAmount", err)
	}
}

func TestLedger_Debit(t *testing.T) {
	l := NewLedger()
	if err := l.Credit("tkn", A(100)); err != nil {
		t.Fatalf("unexpected credit error: %v", err)
	}

	if err := l.Debit("tkn", A(101)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("over-debit error = %v, want ErrInsufficientBalance", err)
	}
	if got := l.Get("tkn"); !got.Equal(A(100)) {
		t.Errorf("balance after failed debit = %s, want 100 (unchanged)", got)
	}

	if err := l.Debit("tkn", A(100)); err != nil {
		t.Fatalf("unexpected debit error: %v", err)
	}
	if got := l.Get("tkn"); !got.IsZero() {
		t.Errorf("balance after full debit = %s, want 0", got)
	}

	// a fully drained ledger is valid and still debit-protected
	if err := l.Debit("tkn", A(1)); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("debit on zero balance error = %v, want ErrInsufficientBalance", err)
	}
}

func TestLedger_Apply_Atomic(t *testing.T) {
	l := NewLedger()
	if err := l.Credit("a", A(50)); err != nil {
		t.Fatalf("unexpected credit error: %v", err)
	}

	// second delta over-debits: neither delta may land
	deltas := []Delta{
		Produced("b", A(10)),
		Consumed("a", A(51)),
	}
	if err := l.Apply(deltas); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Apply error = %v, want ErrInsufficientBalance", err)
	}
	if got := l.Get("a"); !got.Equal(A(50)) {
		t.Errorf("balance a after failed apply = %s, want 50", got)
	}
	if got := l.Get("b"); !got.IsZero() {
		t.Errorf("balance b after failed apply = %s, want 0", got)
	}

	// a valid application lands both deltas
	if err := l.Apply([]Delta{Consumed("a", A(50)), Produced("b", A(20))}); err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	if got := l.Get("a"); !got.IsZero() {
		t.Errorf("balance a = %s, want 0", got)
	}
	if got := l.Get("b"); !got.Equal(A(20)) {
		t.Errorf("balance b = %s, want 20", got)
	}
}

func TestLedger_Assets_Sorted(t *testing.T) {
	l := NewLedger()
	for _, asset := range []AssetID{"zeta", "alpha", Native} {
		if err := l.Credit(asset, A(1)); err != nil {
			t.Fatalf("unexpected credit error: %v", err)
		}
	}
	var got []AssetID
	for asset := range l.Assets() {
		got = append(got, asset)
	}
	want := []AssetID{"alpha", Native, "zeta"}
	if len(got) != len(want) {
		t.Fatalf("Assets() yielded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Assets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
