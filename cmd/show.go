package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/defibasket/basket"
	"github.com/defibasket/basket/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	basket int64
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show one basket, or list them all" }
func (*showCmd) Usage() string {
	return `dbk show [-basket <id>]

  Without -basket, lists every basket. With -basket, details what that basket
  holds.
`
}

func (p *showCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&p.basket, "basket", -1, "Id of the basket to show. Lists all baskets by default.")
}

func (p *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := LoadManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if p.basket < 0 {
		var reports []*basket.Report
		for b := range m.Baskets() {
			r, err := m.Report(b.ID())
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return subcommands.ExitFailure
			}
			reports = append(reports, r)
		}
		printMarkdown(renderer.Baskets(reports))
		return subcommands.ExitSuccess
	}

	r, err := m.Report(basket.BasketID(p.basket))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Report(r))
	return subcommands.ExitSuccess
}
