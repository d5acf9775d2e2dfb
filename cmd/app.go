// Package cmd implements the CLI application to manage baskets.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/defibasket/basket"
	"github.com/defibasket/basket/bridge"
	"github.com/google/subcommands"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&createCmd{},
	&depositCmd{},
	&editCmd{},
	&withdrawCmd{},
	&showCmd{},
	&txCmd{},
	&valueCmd{},
	&bridgesCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var journalFile = flag.String("journal", "baskets.jsonl", "Path to the journal file (JSONL format)")
var bridgesFile = flag.String("bridges", "", "Path to the bridge configuration file. Uses a built-in default set when empty.")

// LoadConfig loads the bridge configuration named on the command line, or
// the default set.
func LoadConfig() (bridge.Config, error) {
	if *bridgesFile == "" {
		return bridge.Default(), nil
	}
	return bridge.Load(*bridgesFile)
}

// LoadManager rebuilds the manager from the journal file. A missing journal
// is an empty one.
func LoadManager() (*basket.Manager, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	m := basket.NewManager(basket.NewEngine(cfg.Registry()), nil, nil)

	f, err := os.Open(*journalFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Println("warning, journal does not exist, starting from an empty one")
			return m, nil
		}
		return nil, fmt.Errorf("could not open journal %q: %w", *journalFile, err)
	}
	defer f.Close()

	ops, err := basket.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal %q: %w", *journalFile, err)
	}
	if err := basket.Replay(m, ops); err != nil {
		return nil, fmt.Errorf("could not replay journal %q: %w", *journalFile, err)
	}
	return m, nil
}

// applyAndAppend applies an operation to the manager and, on success,
// appends it to the journal file.
func applyAndAppend(m *basket.Manager, op basket.Operation) subcommands.ExitStatus {
	if err := op.Apply(m); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*journalFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := basket.EncodeOperation(f, op); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", *journalFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended operation to %s\n", *journalFile)
	return subcommands.ExitSuccess
}
