package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type settingsCmd struct {
	dark  string
	font  string
	lang  string
	reset bool
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change display settings" }
func (*settingsCmd) Usage() string {
	return `rebalance settings [-dark on|off] [-font small|medium|large] [-lang <code>] [-reset]

  Without flags, shows the current settings. Dark mode selects the
  terminal color style and the font scale the rendering width.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dark, "dark", "", "Dark mode: on or off")
	f.StringVar(&c.font, "font", "", "Font scale: small, medium or large")
	f.StringVar(&c.lang, "lang", "", "Language code, e.g. ko or en")
	f.BoolVar(&c.reset, "reset", false, "Restore the default settings")
}

func (c *settingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	svc, err := app.Settings(ctx)
	if err != nil {
		return app.fail(err)
	}

	if c.reset {
		if _, err := svc.Reset(ctx); err != nil {
			return app.fail(err)
		}
	}
	if c.dark != "" {
		on, err := parseSwitch("dark mode", c.dark)
		if err != nil {
			return app.fail(err)
		}
		if _, err := svc.SetDarkMode(ctx, on); err != nil {
			return app.fail(err)
		}
	}
	if c.font != "" {
		scale, err := parseFontScale(c.font)
		if err != nil {
			return app.fail(err)
		}
		if _, err := svc.SetFontScale(ctx, scale); err != nil {
			return app.fail(err)
		}
	}
	if c.lang != "" {
		if _, err := svc.SetLanguage(ctx, c.lang); err != nil {
			return app.fail(err)
		}
	}

	app.print(ctx, settingsMarkdown(svc.Get(ctx)))
	return subcommands.ExitSuccess
}
