package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/defibasket/basket"
	"github.com/google/subcommands"
)

type depositCmd struct {
	basket uint64
	from   string
	memo   string
	native string
	funds  fundsFlag
	script scriptFlag
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit new funds into an existing basket" }
func (*depositCmd) Usage() string {
	return `dbk deposit -basket <id> -from <address> [-fund <asset:amount>]... [-native <amount>] [-step <bridge:assetIn:percent[:params]>]... [-memo <text>]

  Credits the given funds to the basket's wallet and runs the script over the
  resulting balances. Only the basket's owner may deposit.
`
}

func (p *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&p.basket, "basket", 0, "Id of the basket to deposit into.")
	f.StringVar(&p.from, "from", "", "Caller address, must be the basket owner.")
	f.StringVar(&p.memo, "memo", "", "Free-text note recorded in the journal.")
	f.StringVar(&p.native, "native", "", "Native currency amount to deposit.")
	f.Var(&p.funds, "fund", "Asset to deposit, as asset:amount. Repeatable.")
	f.Var(&p.script, "step", "Script step, as bridge:assetIn:percent[:key=value;...]. Repeatable.")
}

func (p *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required.")
		return subcommands.ExitUsageError
	}
	native, err := parseNative(p.native)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	m, err := LoadManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	op := basket.NewDepositOp(basket.BasketID(p.basket), basket.Address(p.from), p.memo, p.funds.assets, p.funds.amounts, native, p.script.script)
	return applyAndAppend(m, op)
}
