package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/simaogato/rebalancer/internal/domain"
	"github.com/simaogato/rebalancer/internal/scheduler"
	"github.com/simaogato/rebalancer/internal/usecase/reminder"
)

type remindCmd struct {
	days     int
	watch    bool
	schedule string
}

func (*remindCmd) Name() string     { return "remind" }
func (*remindCmd) Synopsis() string { return "show upcoming reminders, optionally on a schedule" }
func (*remindCmd) Usage() string {
	return `rebalance remind [-days <n>] [-watch [-schedule <cron>]]

  Shows the reminders due from today through the next n days. With -watch
  the command keeps running and repeats the check on a cron schedule
  (REMINDER_SCHEDULE, default every day at 09:00) until interrupted.
`
}

func (c *remindCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 0, "Lookahead window in days (default REMINDER_LOOKAHEAD_DAYS)")
	f.BoolVar(&c.watch, "watch", false, "Keep running and check on a schedule")
	f.StringVar(&c.schedule, "schedule", "", "Cron schedule for -watch (default REMINDER_SCHEDULE)")
}

func (c *remindCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	app := appFrom(args)
	if c.days < 0 {
		return app.usage("-days must not be negative")
	}
	days := c.days
	if days == 0 {
		days = app.Config.ReminderLookaheadDays
	}

	store, err := app.Store(ctx)
	if err != nil {
		return app.fail(err)
	}

	job := reminder.NewJob(reminder.JobConfig{
		Events:        store.Events(),
		LookaheadDays: days,
		Log:           app.Log,
		Notify: func(due []domain.CalendarEvent) {
			title := fmt.Sprintf("Reminders for the next %d days", days)
			app.print(ctx, eventsMarkdown(title, due, nil))
		},
	})

	if !c.watch {
		if err := job.Run(); err != nil {
			return app.fail(err)
		}
		return subcommands.ExitSuccess
	}

	schedule := c.schedule
	if schedule == "" {
		schedule = app.Config.ReminderSchedule
	}

	s := scheduler.New(app.Log)
	if err := s.AddJob(schedule, job); err != nil {
		return app.usage("invalid schedule %q: %v", schedule, err)
	}
	if err := s.RunNow(job); err != nil {
		return app.fail(err)
	}

	s.Start()
	<-ctx.Done()
	s.Stop()
	return subcommands.ExitSuccess
}
