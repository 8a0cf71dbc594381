package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/simaogato/rebalancer/internal/domain"
	"github.com/simaogato/rebalancer/internal/usecase/preset"
)

// selectHoldings captures the live holdings named by a comma separated
// list of references, or all of them when the list is empty.
func selectHoldings(live []domain.Holding, only string) ([]domain.Holding, error) {
	var ids []uuid.UUID
	for _, ref := range strings.Split(only, ",") {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		h, err := resolveHolding(live, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, h.ID)
	}
	return preset.Capture(live, ids), nil
}

type presetsCmd struct {
	verbose bool
}

func (*presetsCmd) Name() string     { return "presets" }
func (*presetsCmd) Synopsis() string { return "list saved presets, newest first" }
func (*presetsCmd) Usage() string {
	return `rebalance presets [-v]

  Lists saved presets. With -v every preset is shown with its holdings.
`
}

func (c *presetsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.verbose, "v", false, "Show the holdings of every preset")
}

func (c *presetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	app.print(ctx, presetsMarkdown(store.Presets().Value(), app.Config.Currency, c.verbose))
	return subcommands.ExitSuccess
}

type savePresetCmd struct {
	name        string
	description string
	only        string
}

func (*savePresetCmd) Name() string     { return "save-preset" }
func (*savePresetCmd) Synopsis() string { return "save the current holdings as a preset" }
func (*savePresetCmd) Usage() string {
	return `rebalance save-preset -name <name> [-desc <text>] [-only <holding>,<holding>...]

  Saves a copy of the current holdings as a new preset. With -only, just
  the listed holdings are saved. Later changes to the holdings do not
  affect the preset.
`
}

func (c *savePresetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Preset name")
	f.StringVar(&c.description, "desc", "", "Optional description")
	f.StringVar(&c.only, "only", "", "Comma separated holdings to include (default all)")
}

func (c *savePresetCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	name, err := requireText("name", c.name)
	if err != nil {
		return app.fail(err)
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	holdings, err := selectHoldings(store.Holdings().Value(), c.only)
	if err != nil {
		return app.fail(err)
	}

	if err := store.AddPreset(ctx, name, strings.TrimSpace(c.description), holdings); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Saved preset %s with %d holdings.\n", name, len(holdings))
	return subcommands.ExitSuccess
}

type updatePresetCmd struct {
	name string
	only string
}

func (*updatePresetCmd) Name() string     { return "update-preset" }
func (*updatePresetCmd) Synopsis() string { return "overwrite a preset with the current holdings" }
func (*updatePresetCmd) Usage() string {
	return `rebalance update-preset [-name <new name>] [-only <holding>,...] <preset>

  Replaces the holdings of a preset with a copy of the current holdings
  and optionally renames it. The description is kept.
`
}

func (c *updatePresetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New preset name (default keeps the current name)")
	f.StringVar(&c.only, "only", "", "Comma separated holdings to include (default all)")
}

func (c *updatePresetCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage("update-preset expects exactly one preset reference")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	p, err := resolvePreset(store.Presets().Value(), f.Arg(0))
	if err != nil {
		return app.fail(err)
	}

	name := p.Name
	if c.name != "" {
		if name, err = requireText("name", c.name); err != nil {
			return app.fail(err)
		}
	}
	holdings, err := selectHoldings(store.Holdings().Value(), c.only)
	if err != nil {
		return app.fail(err)
	}

	if err := store.UpdatePreset(ctx, p.ID, name, holdings); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Updated preset %s with %d holdings.\n", name, len(holdings))
	return subcommands.ExitSuccess
}

type loadPresetCmd struct{}

func (*loadPresetCmd) Name() string     { return "load-preset" }
func (*loadPresetCmd) Synopsis() string { return "replace the current holdings with a preset" }
func (*loadPresetCmd) Usage() string {
	return `rebalance load-preset <preset>

  Replaces all current holdings with a copy of the preset's holdings.
  This cannot be undone; save the current holdings first if needed.
`
}

func (*loadPresetCmd) SetFlags(*flag.FlagSet) {}

func (*loadPresetCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() != 1 {
		return app.usage("load-preset expects exactly one preset reference")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	p, err := resolvePreset(store.Presets().Value(), f.Arg(0))
	if err != nil {
		return app.fail(err)
	}

	if err := store.LoadPreset(ctx, p); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Loaded preset %s. Total assets: %s\n", p.Name, formatMoney(store.TotalAssets().Value(), app.Config.Currency))
	return subcommands.ExitSuccess
}

type deletePresetCmd struct{}

func (*deletePresetCmd) Name() string     { return "delete-preset" }
func (*deletePresetCmd) Synopsis() string { return "delete one or more presets" }
func (*deletePresetCmd) Usage() string {
	return `rebalance delete-preset <preset>...
`
}

func (*deletePresetCmd) SetFlags(*flag.FlagSet) {}

func (*deletePresetCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() == 0 {
		return app.usage("delete-preset expects at least one preset reference")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	for _, ref := range f.Args() {
		p, err := resolvePreset(store.Presets().Value(), ref)
		if err != nil {
			return app.fail(err)
		}
		if err := store.DeletePreset(ctx, p.ID); err != nil {
			return app.fail(err)
		}
		fmt.Fprintf(app.Out, "Deleted preset %s.\n", p.Name)
	}
	return subcommands.ExitSuccess
}
