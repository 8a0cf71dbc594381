package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/simaogato/rebalancer/internal/domain"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
	"github.com/simaogato/rebalancer/internal/usecase/reminder"
)

type eventsCmd struct {
	month string
	date  string
}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "list calendar reminders" }
func (*eventsCmd) Usage() string {
	return `rebalance events [-m <YYYY-MM> | -d <date>]

  Lists calendar reminders. With -m only the events of that month are
  listed together with the days that carry events; with -d only the
  events of that day.
`
}

func (c *eventsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to show, e.g. 2025-07")
	f.StringVar(&c.date, "d", "", "Single day to show, e.g. 2025-07-01")
}

func (c *eventsCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if c.month != "" && c.date != "" {
		return app.usage("-m and -d are mutually exclusive")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	events := store.Events().Value()

	switch {
	case c.date != "":
		on, err := domain.ParseDate(c.date)
		if err != nil {
			return app.fail(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		}
		app.print(ctx, eventsMarkdown("Events on "+on.String(), reminder.On(events, on), nil))

	case c.month != "":
		first, err := time.Parse("2006-1", c.month)
		if err != nil {
			return app.usage("invalid month %q: want YYYY-MM", c.month)
		}
		var inMonth []domain.CalendarEvent
		for _, e := range events {
			if e.Date.Year() == first.Year() && e.Date.Month() == first.Month() {
				inMonth = append(inMonth, e)
			}
		}
		days := reminder.DaysWithEvents(events, first.Year(), first.Month())
		app.print(ctx, eventsMarkdown("Events in "+first.Format("January 2006"), inMonth, days))

	default:
		app.print(ctx, eventsMarkdown("Events", events, nil))
	}
	return subcommands.ExitSuccess
}

type addEventCmd struct {
	title string
	date  string
}

func (*addEventCmd) Name() string     { return "add-event" }
func (*addEventCmd) Synopsis() string { return "add a calendar reminder" }
func (*addEventCmd) Usage() string {
	return `rebalance add-event -title <title> [-d <date>]

  Adds a reminder on the given date (default today). Dates are written
  YYYY-MM-DD; leading zeros are optional.
`
}

func (c *addEventCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "Reminder title")
	f.StringVar(&c.date, "d", domain.Today().String(), "Reminder date")
}

func (c *addEventCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	title, err := requireText("title", c.title)
	if err != nil {
		return app.fail(err)
	}
	on, err := domain.ParseDate(c.date)
	if err != nil {
		return app.fail(apperrors.Wrap(apperrors.ErrInvalidInput, err))
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	if err := store.AddEvent(ctx, title, on); err != nil {
		return app.fail(err)
	}
	fmt.Fprintf(app.Out, "Added reminder %q on %s.\n", title, on)
	return subcommands.ExitSuccess
}

type deleteEventCmd struct{}

func (*deleteEventCmd) Name() string     { return "delete-event" }
func (*deleteEventCmd) Synopsis() string { return "delete calendar reminders" }
func (*deleteEventCmd) Usage() string {
	return `rebalance delete-event <id|title>...
`
}

func (*deleteEventCmd) SetFlags(*flag.FlagSet) {}

func (*deleteEventCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if f.NArg() == 0 {
		return app.usage("delete-event expects at least one event id or title")
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}
	for _, ref := range f.Args() {
		e, err := resolveEvent(store.Events().Value(), ref)
		if err != nil {
			return app.fail(err)
		}
		if err := store.DeleteEvent(ctx, e.ID); err != nil {
			return app.fail(err)
		}
		fmt.Fprintf(app.Out, "Deleted reminder %q.\n", e.Title)
	}
	return subcommands.ExitSuccess
}
