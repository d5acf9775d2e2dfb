package renderer

import (
	"strings"
	"testing"

	"github.com/defibasket/basket"
	"github.com/shopspring/decimal"
)

func TestReport(t *testing.T) {
	r := &basket.Report{
		ID:     3,
		Owner:  "0xalice",
		Wallet: "wallet-3",
		Balances: []basket.BalanceLine{
			{Asset: "usdc", Balance: basket.A(150)},
			{Asset: "weth", Balance: basket.A(2)},
		},
	}
	got := Report(r)
	for _, want := range []string{
		"# Basket 3",
		"`0xalice`",
		"| usdc | 150 |",
		"| weth | 2 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q in:\n%s", want, got)
		}
	}
}

func TestReportEmpty(t *testing.T) {
	got := Report(&basket.Report{ID: 1, Owner: "0xalice"})
	if !strings.Contains(got, "holds no assets") {
		t.Errorf("empty report:\n%s", got)
	}
}

func TestOperation(t *testing.T) {
	cases := []struct {
		op   basket.Operation
		want string
	}{
		{
			op:   basket.NewCreateOp("0xalice", "", []basket.AssetID{"usdc"}, []basket.Amount{basket.A(100)}, basket.A(0), basket.Script{}),
			want: "Created a basket with 100 usdc, 0 steps",
		},
		{
			op:   basket.NewDepositOp(2, "0xalice", "", nil, nil, basket.A(50), basket.Script{}),
			want: "Deposited 50 native into basket 2, 0 steps",
		},
		{
			op: basket.NewEditOp(2, "0xalice", "", basket.Script{
				Bridges: []basket.BridgeID{"swap"},
				Calls:   []basket.Call{{AssetIn: "usdc", PercentIn: basket.FullPercent}},
			}),
			want: "Edited basket 2 with 1 steps",
		},
		{
			op:   basket.NewWithdrawOp(2, "0xalice", "", []basket.AssetID{"usdc"}, []basket.Amount{basket.A(10)}, 50000, basket.Script{}),
			want: "Withdrew 10 usdc, 50% of native from basket 2, 0 steps",
		},
	}
	for _, c := range cases {
		if got := Operation(c.op); got != c.want {
			t.Errorf("Operation(%s) = %q, want %q", c.op.What(), got, c.want)
		}
	}
}

func TestOperationsListing(t *testing.T) {
	ops := []basket.Operation{
		basket.NewCreateOp("0xalice", "", nil, nil, basket.A(100), basket.Script{}),
	}
	got := Operations(ops)
	if !strings.Contains(got, "# Operations") || !strings.Contains(got, "`0xalice`") {
		t.Errorf("listing:\n%s", got)
	}
}

func TestValuation(t *testing.T) {
	v := &basket.Valuation{
		Basket: 1,
		Lines: []basket.ValuationLine{
			{Asset: "usdc", Balance: basket.A(150), PriceUSD: decimal.New(1, 0), ValueUSD: decimal.RequireFromString("150.5")},
		},
		TotalUSD: decimal.RequireFromString("150.5"),
		Missing:  []basket.AssetID{"obscure"},
	}
	got := Valuation(v)
	for _, want := range []string{"$150.50", "**Total: $150.50**", "`obscure`"} {
		if !strings.Contains(got, want) {
			t.Errorf("valuation missing %q in:\n%s", want, got)
		}
	}
}
