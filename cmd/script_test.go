package cmd

import (
	"testing"

	"github.com/defibasket/basket"
)

func TestScriptFlag(t *testing.T) {
	var s scriptFlag
	if err := s.Set("wrap:native:100%"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("swap:weth:50%:out=usdc;slippage=0.5"); err != nil {
		t.Fatal(err)
	}

	if s.script.Len() != 2 {
		t.Fatalf("script has %d steps, want 2", s.script.Len())
	}
	if s.script.Bridges[0] != "wrap" || s.script.Calls[0].AssetIn != basket.Native {
		t.Errorf("step 0 = %v %v", s.script.Bridges[0], s.script.Calls[0])
	}
	if s.script.Calls[0].PercentIn != basket.FullPercent {
		t.Errorf("step 0 percent = %v", s.script.Calls[0].PercentIn)
	}
	if got := s.script.Calls[1].Params["out"]; got != "usdc" {
		t.Errorf("step 1 out = %q", got)
	}
	if got := s.script.Calls[1].Params["slippage"]; got != "0.5" {
		t.Errorf("step 1 slippage = %q", got)
	}
}

func TestScriptFlagRejects(t *testing.T) {
	cases := []string{
		"",
		"wrap",
		"wrap:native",
		"wrap:native:banana",
		"wrap:native:101%",
		"swap:weth:50%:out",
	}
	for _, c := range cases {
		var s scriptFlag
		if err := s.Set(c); err == nil {
			t.Errorf("Set(%q) should fail", c)
		}
	}
}

func TestFundsFlag(t *testing.T) {
	var ff fundsFlag
	if err := ff.Set("usdc:1000"); err != nil {
		t.Fatal(err)
	}
	if err := ff.Set("weth:2"); err != nil {
		t.Fatal(err)
	}
	if len(ff.assets) != 2 || ff.assets[1] != "weth" || !ff.amounts[1].Equal(basket.A(2)) {
		t.Errorf("funds = %v %v", ff.assets, ff.amounts)
	}

	for _, c := range []string{"", "usdc", ":5", "usdc:-3", "usdc:ten"} {
		var bad fundsFlag
		if err := bad.Set(c); err == nil {
			t.Errorf("Set(%q) should fail", c)
		}
	}
}
