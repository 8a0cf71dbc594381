package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/simaogato/rebalancer/internal/usecase/allocator"
)

type planCmd struct {
	deposit string
}

func (*planCmd) Name() string { return "plan" }
func (*planCmd) Synopsis() string {
	return "suggest transfers or a deposit split that reach the target ratios"
}
func (*planCmd) Usage() string {
	return `rebalance plan [-deposit <amount>]

  Without -deposit, lists the transfers from holdings above their target
  to holdings below it.

  With -deposit, splits the new money across holdings so the portfolio
  gets as close to its targets as possible without selling anything.
  Nothing is changed; apply the result with update-holding.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.deposit, "deposit", "", "Amount of new money to split across holdings")
}

func (c *planCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	holdings := store.Holdings().Value()

	if c.deposit == "" {
		app.print(ctx, transfersMarkdown(allocator.PlanTransfers(holdings), app.Config.Currency))
		return subcommands.ExitSuccess
	}

	deposit, err := parseAmount("deposit", c.deposit)
	if err != nil {
		return app.fail(err)
	}
	plan, err := allocator.PlanContribution(deposit, holdings)
	if err != nil {
		return app.fail(err)
	}
	app.print(ctx, contributionMarkdown(plan, deposit, app.Config.Currency))
	return subcommands.ExitSuccess
}
