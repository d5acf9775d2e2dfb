package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/defibasket/basket"
	"github.com/google/subcommands"
)

type withdrawCmd struct {
	basket        uint64
	from          string
	memo          string
	nativePercent string
	outputs       fundsFlag
	script        scriptFlag
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw assets out of a basket" }
func (*withdrawCmd) Usage() string {
	return `dbk withdraw -basket <id> -from <address> [-out <asset:amount>]... [-native-percent <percent>] [-step <bridge:assetIn:percent[:params]>]... [-memo <text>]

  Runs the script first, letting it unwind positions into the requested
  output assets, then pays the outputs and the native percentage to the
  caller. The native percentage is resolved after the script has run. Only
  the basket's owner may withdraw.

Usage Examples:
# Unwind the vault position entirely and take all the resulting usdc.
$ dbk withdraw -basket 0 -from 0xalice -step "vault-withdraw:yv-usdc:100%" -out usdc:1844450

# Take half of whatever native currency the basket holds.
$ dbk withdraw -basket 0 -from 0xalice -native-percent 50%

`
}

func (p *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&p.basket, "basket", 0, "Id of the basket to withdraw from.")
	f.StringVar(&p.from, "from", "", "Caller address, must be the basket owner.")
	f.StringVar(&p.memo, "memo", "", "Free-text note recorded in the journal.")
	f.StringVar(&p.nativePercent, "native-percent", "", "Share of the native balance to withdraw.")
	f.Var(&p.outputs, "out", "Output asset to withdraw, as asset:amount. Repeatable.")
	f.Var(&p.script, "step", "Script step, as bridge:assetIn:percent[:key=value;...]. Repeatable.")
}

func (p *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required.")
		return subcommands.ExitUsageError
	}
	var nativePercent basket.Percent
	if p.nativePercent != "" {
		var err error
		nativePercent, err = basket.ParsePercent(p.nativePercent)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}

	m, err := LoadManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	op := basket.NewWithdrawOp(basket.BasketID(p.basket), basket.Address(p.from), p.memo, p.outputs.assets, p.outputs.amounts, nativePercent, p.script.script)
	return applyAndAppend(m, op)
}
