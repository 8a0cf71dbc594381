package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the holdings" }
func (*holdingsCmd) Usage() string {
	return `rebalance holdings

  Lists the holdings with their short id, target ratio and current value.
  Any unique prefix of an id, or the exact name, can be used to refer to a
  holding in other commands.
`
}

func (*holdingsCmd) SetFlags(*flag.FlagSet) {}

func (*holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	app.print(ctx, holdingsMarkdown(store.Holdings().Value(), app.Config.Currency))
	return subcommands.ExitSuccess
}

type addHoldingCmd struct {
	name  string
	ratio string
	value string
}

func (*addHoldingCmd) Name() string     { return "add-holding" }
func (*addHoldingCmd) Synopsis() string { return "add a holding" }
func (*addHoldingCmd) Usage() string {
	return `rebalance add-holding -name <name> -ratio <percent> -value <amount>

  Adds a holding and records a new total-asset snapshot.
  Example: rebalance add-holding -name "World ETF" -ratio 60 -value 1,500,000
`
}

func (c *addHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Holding name")
	f.StringVar(&c.ratio, "ratio", "0", "Target allocation in percent")
	f.StringVar(&c.value, "value", "0", "Current value in the portfolio currency")
}

func (c *addHoldingCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)

	name, err := requireText("name", c.name)
	if err != nil {
		return app.fail(err)
	}
	ratio, err := parseAmount("ratio", c.ratio)
	if err != nil {
		return app.fail(err)
	}
	value, err := parseAmount("value", c.value)
	if err != nil {
		return app.fail(err)
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	if err := store.AddHolding(ctx, name, ratio, value); err != nil {
		return app.fail(err)
	}

	fmt.Fprintf(app.Out, "Added %s. Total assets: %s\n", name, formatMoney(store.TotalAssets().Value(), app.Config.Currency))
	return subcommands.ExitSuccess
}

type updateHoldingCmd struct {
	name  string
	ratio string
	value string
}

func (*updateHoldingCmd) Name() string { return "update-holding" }
func (*updateHoldingCmd) Synopsis() string {
	return "change the name, target ratio or value of a holding"
}
func (*updateHoldingCmd) Usage() string {
	return `rebalance update-holding [-name <name>] [-ratio <percent>] [-value <amount>] <holding>

  Updates a holding in place. Omitted flags keep their current value.
`
}

func (c *updateHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New holding name")
	f.StringVar(&c.ratio, "ratio", "", "New target allocation in percent")
	f.StringVar(&c.value, "value", "", "New current value")
}

func (c *updateHoldingCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage("update-holding expects exactly one holding reference")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	h, err := resolveHolding(store.Holdings().Value(), f.Arg(0))
	if err != nil {
		return app.fail(err)
	}

	name, ratio, value := h.Name, h.TargetRatio, h.CurrentValue
	if c.name != "" {
		if name, err = requireText("name", c.name); err != nil {
			return app.fail(err)
		}
	}
	if c.ratio != "" {
		if ratio, err = parseAmount("ratio", c.ratio); err != nil {
			return app.fail(err)
		}
	}
	if c.value != "" {
		if value, err = parseAmount("value", c.value); err != nil {
			return app.fail(err)
		}
	}

	if err := store.UpdateHolding(ctx, h.ID, name, ratio, value); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Updated %s. Total assets: %s\n", name, formatMoney(store.TotalAssets().Value(), app.Config.Currency))
	return subcommands.ExitSuccess
}

type deleteHoldingCmd struct{}

func (*deleteHoldingCmd) Name() string     { return "delete-holding" }
func (*deleteHoldingCmd) Synopsis() string { return "delete one or more holdings" }
func (*deleteHoldingCmd) Usage() string {
	return `rebalance delete-holding <holding>...

  Deletes holdings. Every deletion records a new total-asset snapshot.
`
}

func (*deleteHoldingCmd) SetFlags(*flag.FlagSet) {}

func (*deleteHoldingCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() == 0 {
		return app.usage("delete-holding expects at least one holding reference")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}

	for _, ref := range f.Args() {
		h, err := resolveHolding(store.Holdings().Value(), ref)
		if err != nil {
			return app.fail(err)
		}
		if err := store.DeleteHolding(ctx, h.ID); err != nil {
			return app.fail(err)
		}
		fmt.Fprintf(app.Out, "Deleted %s.\n", h.Name)
	}

	total := store.TotalAssets().Value()
	fmt.Fprintf(app.Out, "Total assets: %s\n", formatMoney(total, app.Config.Currency))
	return subcommands.ExitSuccess
}
