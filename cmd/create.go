package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/defibasket/basket"
	"github.com/google/subcommands"
)

type createCmd struct {
	from   string
	memo   string
	native string
	funds  fundsFlag
	script scriptFlag
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new basket, funding it and running a script" }
func (*createCmd) Usage() string {
	return `dbk create -from <address> [-fund <asset:amount>]... [-native <amount>] [-step <bridge:assetIn:percent[:params]>]... [-memo <text>]

  Creates a new basket owned by -from, credits the given funds to its wallet
  and runs the script over them. At least one fund or a native amount is
  required.

Usage Examples:
# Create a basket from 1000 native, wrap it all and swap half into usdc.
$ dbk create -from 0xalice -native 1000 -step "wrap:native:100%" -step "swap:weth:50%:out=usdc"

`
}

func (p *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.from, "from", "", "Owner address of the new basket.")
	f.StringVar(&p.memo, "memo", "", "Free-text note recorded in the journal.")
	f.StringVar(&p.native, "native", "", "Native currency amount to fund with.")
	f.Var(&p.funds, "fund", "Asset to fund with, as asset:amount. Repeatable.")
	f.Var(&p.script, "step", "Script step, as bridge:assetIn:percent[:key=value;...]. Repeatable.")
}

func (p *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	op := basket.NewCreateOp(basket.Address(p.from), p.memo, p.funds.assets, p.funds.amounts, native, p.script.script)
	return applyAndAppend(m, op)
}

// parseNative reads an optional native amount, "" meaning zero.
func parseNative(s string) (basket.Amount, error) {
	if s == "" {
		return basket.Amount{}, nil
	}
	return basket.ParseAmount(s)
}
