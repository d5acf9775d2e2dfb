package renderer

import (
	"github.com/defibasket/basket"
)

// Report renders one basket's balances as a markdown document.
func Report(r *basket.Report) string {
	md := newRenderer()
	md.Printf("# Basket %d\n\n", r.ID)
	md.Printf("- Owner: `%s`\n", r.Owner)
	md.Printf("- Wallet: `%s`\n\n", r.Wallet)

	if len(r.Balances) == 0 {
		md.Printf("The basket holds no assets.\n")
		return md.String()
	}

	md.Printf("| Asset | Balance |\n")
	md.Printf("|:---|---:|\n")
	for _, line := range r.Balances {
		md.Printf("| %s | %s |\n", line.Asset, line.Balance)
	}
	return md.String()
}

// Baskets renders the one-line-per-basket listing.
func Baskets(reports []*basket.Report) string {
	md := newRenderer()
	md.Printf("# Baskets\n\n")
	if len(reports) == 0 {
		md.Printf("No baskets yet.\n")
		return md.String()
	}
	md.Printf("| ID | Owner | Assets |\n")
	md.Printf("|---:|:---|---:|\n")
	for _, r := range reports {
		md.Printf("| %d | `%s` | %d |\n", r.ID, r.Owner, len(r.Balances))
	}
	return md.String()
}

// Bridges renders the registered bridge ids.
func Bridges(ids []basket.BridgeID) string {
	md := newRenderer()
	md.Printf("# Bridges\n\n")
	for _, id := range ids {
		md.Printf("- `%s`\n", id)
	}
	return md.String()
}
