package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/defibasket/basket"
	"github.com/shopspring/decimal"
)

// Valuation renders a priced basket view as a markdown document.
func Valuation(v *basket.Valuation) string {
	md := newRenderer()
	md.Printf("# Basket %d Valuation\n\n", v.Basket)

	if len(v.Lines) > 0 {
		md.Printf("| Asset | Balance | Price | Value |\n")
		md.Printf("|:---|---:|---:|---:|\n")
		for _, line := range v.Lines {
			md.Printf("| %s | %s | %s | %s |\n", line.Asset, line.Balance, usd(line.PriceUSD), usd(line.ValueUSD))
		}
		md.Printf("\n**Total: %s**\n", usd(v.TotalUSD))
	}

	if len(v.Missing) > 0 {
		md.Printf("\nNo quote for:\n")
		for _, asset := range v.Missing {
			md.Printf("- `%s`\n", asset)
		}
	}
	return md.String()
}

// usd formats an amount in dollars, rounding to the cent.
func usd(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
