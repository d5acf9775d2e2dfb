package basket

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmount_Percent_HugeBalance(t *testing.T) {
	// a 77-digit balance close to 2^256 must not overflow the intermediate
	// product of the percentage resolution.
	huge, err := ParseAmount(strings.Repeat("9", 70))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if got := huge.Percent(FullPercent); !got.Equal(huge) {
		t.Errorf("100%% of huge = %s, want the full balance", got)
	}
	half := huge.Percent(50_000)
	sum, ok := half.Add(half)
	if !ok {
		t.Fatal("unexpected overflow re-assembling halves")
	}
	// floor(9...9 / 2) * 2 is one unit short of the odd original
	short, _ := huge.Sub(sum)
	if !short.Equal(A(1)) {
		t.Errorf("two halves of an odd balance fall short by %s, want 1", short)
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "1000000", want: 1_000_000},
		{in: "-5", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(A(tc.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestAmountFromDecimal(t *testing.T) {
	got, err := AmountFromDecimal(decimal.RequireFromString("166.9"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(A(166)) {
		t.Errorf("AmountFromDecimal(166.9) = %s, want 166 (floored)", got)
	}
	if _, err := AmountFromDecimal(decimal.RequireFromString("-1")); err == nil {
		t.Error("negative decimal accepted")
	}
}

func TestParsePercent(t *testing.T) {
	testCases := []struct {
		in      string
		want    Percent
		wantErr bool
	}{
		{in: "100", want: FullPercent},
		{in: "100%", want: FullPercent},
		{in: "12.5", want: 12_500},
		{in: "0.001", want: 1},
		{in: "0", want: 0},
		{in: "0.0001", wantErr: true}, // below scale resolution
		{in: "100.001", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "pct", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePercent(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParsePercent(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParsePercent(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestPercent_String(t *testing.T) {
	if got := Percent(12_500).String(); got != "12.5%" {
		t.Errorf("String() = %q, want \"12.5%%\"", got)
	}
	if got := FullPercent.String(); got != "100%" {
		t.Errorf("String() = %q, want \"100%%\"", got)
	}
}
