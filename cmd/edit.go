package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/defibasket/basket"
	"github.com/google/subcommands"
)

type editCmd struct {
	basket uint64
	from   string
	memo   string
	script scriptFlag
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "rebalance a basket by running a script over its holdings" }
func (*editCmd) Usage() string {
	return `dbk edit -basket <id> -from <address> -step <bridge:assetIn:percent[:params]>... [-memo <text>]

  Runs a script against the basket's current holdings without moving funds in
  or out. Only the basket's owner may edit.

Usage Examples:
# Move half the usdc position into a vault.
$ dbk edit -basket 0 -from 0xalice -step "vault-deposit:usdc:50%"

`
}

func (p *editCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&p.basket, "basket", 0, "Id of the basket to edit.")
	f.StringVar(&p.from, "from", "", "Caller address, must be the basket owner.")
	f.StringVar(&p.memo, "memo", "", "Free-text note recorded in the journal.")
	f.Var(&p.script, "step", "Script step, as bridge:assetIn:percent[:key=value;...]. Repeatable.")
}

func (p *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required.")
		return subcommands.ExitUsageError
	}
	if p.script.script.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one -step is required.")
		return subcommands.ExitUsageError
	}

	m, err := LoadManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	op := basket.NewEditOp(basket.BasketID(p.basket), basket.Address(p.from), p.memo, p.script.script)
	return applyAndAppend(m, op)
}
