package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/defibasket/basket/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion, active only when invoked by the completion hook.
	completion().Complete("dbk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	step := predict.Something
	funds := predict.Something
	addr := predict.Something

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"journal": predict.Files("*.jsonl"),
			"bridges": predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"create": {Flags: map[string]complete.Predictor{
				"from": addr, "fund": funds, "native": predict.Nothing, "step": step, "memo": predict.Nothing,
			}},
			"deposit": {Flags: map[string]complete.Predictor{
				"basket": predict.Nothing, "from": addr, "fund": funds, "native": predict.Nothing, "step": step, "memo": predict.Nothing,
			}},
			"edit": {Flags: map[string]complete.Predictor{
				"basket": predict.Nothing, "from": addr, "step": step, "memo": predict.Nothing,
			}},
			"withdraw": {Flags: map[string]complete.Predictor{
				"basket": predict.Nothing, "from": addr, "out": funds, "native-percent": predict.Nothing, "step": step, "memo": predict.Nothing,
			}},
			"show": {Flags: map[string]complete.Predictor{
				"basket": predict.Nothing,
			}},
			"tx": {Flags: map[string]complete.Predictor{
				"head": predict.Nothing, "tail": predict.Nothing,
			}},
			"value": {Flags: map[string]complete.Predictor{
				"basket": predict.Nothing, "feed": predict.Nothing, "feed-path": predict.Nothing, "price": predict.Nothing, "decimals": predict.Nothing,
			}},
			"bridges": {},
			"topic":   {Args: predict.Set{"readme", "basket", "bridges", "journal", "percentages"}},
			"assist":  {},
		},
	}
}
