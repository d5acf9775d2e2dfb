package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/defibasket/basket"
	"github.com/defibasket/basket/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	head int
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all operations in the journal" }
func (*txCmd) Usage() string {
	return `dbk tx [-head <n>] [-tail <n>]

  Lists operations from the journal in order, with options for limiting the
  output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.head, "head", 0, "Show only the first N operations.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N operations.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	var ops []basket.Operation
	jf, err := os.Open(*journalFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err == nil {
		defer jf.Close()
		ops, err = basket.DecodeJournal(jf)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	}

	if p.head > 0 && len(ops) > p.head {
		ops = ops[:p.head]
	}
	if p.tail > 0 && len(ops) > p.tail {
		ops = ops[len(ops)-p.tail:]
	}

	printMarkdown(renderer.Operations(ops))
	return subcommands.ExitSuccess
}
