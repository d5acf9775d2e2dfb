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

type bridgesCmd struct{}

func (*bridgesCmd) Name() string     { return "bridges" }
func (*bridgesCmd) Synopsis() string { return "list the registered bridges" }
func (*bridgesCmd) Usage() string {
	return `dbk bridges

List the bridge ids a script step can name, from the active configuration.
`
}

func (c *bridgesCmd) SetFlags(f *flag.FlagSet) {}

func (c *bridgesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var ids []basket.BridgeID
	for id := range cfg.Registry().Bridges() {
		ids = append(ids, id)
	}
	printMarkdown(renderer.Bridges(ids))
	return subcommands.ExitSuccess
}
