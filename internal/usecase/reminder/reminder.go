// Package reminder answers calendar questions about the portfolio's
// reminder events.
package reminder

import (
	"slices"
	"time"

	"github.com/simaogato/rebalancer/internal/domain"
)

// On returns the events scheduled on date, in collection order.
func On(events []domain.CalendarEvent, date domain.Date) []domain.CalendarEvent {
	out := []domain.CalendarEvent{}
	for _, e := range events {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// DaysWithEvents returns the set of days of the given month that carry at
// least one event.
func DaysWithEvents(events []domain.CalendarEvent, year int, month time.Month) map[int]bool {
	days := make(map[int]bool)
	for _, e := range events {
		if e.Date.Year() == year && e.Date.Month() == month {
			days[e.Date.Day()] = true
		}
	}
	return days
}

// Upcoming returns the events falling in [from, from+days), sorted by date
// and then by id. A non-positive days yields nothing.
func Upcoming(events []domain.CalendarEvent, from domain.Date, days int) []domain.CalendarEvent {
	out := []domain.CalendarEvent{}
	if days <= 0 {
		return out
	}
	until := from.AddDays(days)
	for _, e := range events {
		if !e.Date.Before(from) && e.Date.Before(until) {
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.CalendarEvent) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
