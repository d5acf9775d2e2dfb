package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/defibasket/basket"
	"github.com/defibasket/basket/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type valueCmd struct {
	basket   uint64
	feedURL  string
	feedPath string
	prices   string
	decimals string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value a basket's holdings in USD" }
func (*valueCmd) Usage() string {
	return `dbk value -basket <id> [-feed <url>] [-feed-path <jsonpath>] [-price <asset:usd>]... [-decimals <asset:n>]...

  Prices the basket's balances in USD. Quotes come from the price feed URL
  when one is given, and -price flags override or replace feed quotes. Assets
  with no quote are reported, not valued at zero.

Usage Examples:
# Value basket 0 with manual quotes, usdc using 6 decimals.
$ dbk value -basket 0 -price usdc:1 -price weth:1850 -decimals usdc:6

`
}

func (p *valueCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&p.basket, "basket", 0, "Id of the basket to value.")
	f.StringVar(&p.feedURL, "feed", "", "Price feed base URL, queried per asset.")
	f.StringVar(&p.feedPath, "feed-path", "", "jsonpath locating the USD price in the feed response.")
	f.StringVar(&p.prices, "price", "", "Manual quote, as asset:usd. Comma-separated.")
	f.StringVar(&p.decimals, "decimals", "", "Smallest-unit exponent, as asset:n. Comma-separated. Defaults to 18.")
}

func (p *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := LoadManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	b, err := m.Basket(basket.BasketID(p.basket))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	prices := make(map[basket.AssetID]decimal.Decimal)
	if p.feedURL != "" {
		feed := &basket.PriceFeed{BaseURL: p.feedURL, Path: p.feedPath}
		var assets []basket.AssetID
		for asset := range b.Balances() {
			assets = append(assets, asset)
		}
		quotes, err := feed.Refresh(assets)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: price feed: %v\n", err)
		}
		for asset, quote := range quotes {
			prices[asset] = quote
		}
	}
	if err := parsePairs(p.prices, func(asset, value string) error {
		quote, err := decimal.NewFromString(value)
		if err != nil {
			return err
		}
		prices[basket.AssetID(asset)] = quote
		return nil
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing -price:", err)
		return subcommands.ExitUsageError
	}

	decimalsByAsset := make(map[basket.AssetID]int32)
	if err := parsePairs(p.decimals, func(asset, value string) error {
		var n int32
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return err
		}
		decimalsByAsset[basket.AssetID(asset)] = n
		return nil
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing -decimals:", err)
		return subcommands.ExitUsageError
	}

	v, err := m.Value(basket.BasketID(p.basket), prices, decimalsByAsset)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Valuation(v))
	return subcommands.ExitSuccess
}

// parsePairs walks a comma-separated list of asset:value entries.
func parsePairs(list string, visit func(asset, value string) error) error {
	if list == "" {
		return nil
	}
	for _, entry := range strings.Split(list, ",") {
		asset, value, found := strings.Cut(entry, ":")
		if !found {
			return fmt.Errorf("entry %q is not asset:value", entry)
		}
		if err := visit(asset, value); err != nil {
			return fmt.Errorf("entry %q: %w", entry, err)
		}
	}
	return nil
}
