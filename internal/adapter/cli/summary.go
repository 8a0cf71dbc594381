package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display total assets and how far each holding is from its target"
}
func (*summaryCmd) Usage() string {
	return `rebalance summary

  Displays total assets and, for every holding, its current share, its
  target value and the amount to buy (positive deviation) or trim
  (negative deviation) to reach the target ratio.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}

	app.print(ctx, summaryMarkdown(
		store.Holdings().Value(),
		store.TotalAssets().Value(),
		store.AssetHistory().Value(),
		app.Config.Currency,
	))
	return subcommands.ExitSuccess
}

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the total-asset snapshots" }
func (*historyCmd) Usage() string {
	return `rebalance history [-n <count>]

  Displays statistics over every snapshot and the most recent snapshots.
  A snapshot is recorded after every change to the holdings.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of most recent snapshots to list (0 for all)")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if c.limit < 0 {
		return app.usage("-n must not be negative")
	}
	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}

	app.print(ctx, historyMarkdown(store.AssetHistory().Value(), c.limit, app.Config.Currency))
	return subcommands.ExitSuccess
}
