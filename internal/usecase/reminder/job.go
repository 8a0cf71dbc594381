package reminder

import (
	"go.uber.org/zap"

	"github.com/simaogato/rebalancer/internal/domain"
)

// EventSource provides the current calendar events. The Store's events
// view satisfies it.
type EventSource interface {
	Value() []domain.CalendarEvent
}

// Job logs the reminders due within a lookahead window every time it runs.
type Job struct {
	events    EventSource
	lookahead int
	today     func() domain.Date
	notify    func([]domain.CalendarEvent)
	log       *zap.SugaredLogger
}

// JobConfig holds configuration for the reminder job
type JobConfig struct {
	Events        EventSource
	LookaheadDays int
	Log           *zap.SugaredLogger
	// Today defaults to domain.Today.
	Today func() domain.Date
	// Notify, when set, receives the due events of every run.
	Notify func([]domain.CalendarEvent)
}

// NewJob creates a new reminder job
func NewJob(cfg JobConfig) *Job {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	today := cfg.Today
	if today == nil {
		today = domain.Today
	}
	lookahead := cfg.LookaheadDays
	if lookahead <= 0 {
		lookahead = 1
	}
	return &Job{
		events:    cfg.Events,
		lookahead: lookahead,
		today:     today,
		notify:    cfg.Notify,
		log:       log.With("job", "reminder"),
	}
}

// Name returns the job name
func (j *Job) Name() string {
	return "reminder"
}

// Run collects the events due from today through the lookahead window.
func (j *Job) Run() error {
	from := j.today()
	due := Upcoming(j.events.Value(), from, j.lookahead)

	if len(due) == 0 {
		j.log.Debugw("No upcoming reminders", "from", from.String(), "days", j.lookahead)
	}
	for _, e := range due {
		j.log.Infow("Upcoming reminder",
			"id", e.ID,
			"title", e.Title,
			"date", e.Date.String(),
			"in_days", daysBetween(from, e.Date),
		)
	}

	if j.notify != nil {
		j.notify(due)
	}
	return nil
}

func daysBetween(from, to domain.Date) int {
	n := 0
	for d := from; d.Before(to); d = d.AddDays(1) {
		n++
	}
	return n
}
