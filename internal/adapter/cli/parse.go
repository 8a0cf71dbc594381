package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/rebalancer/internal/domain"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
)

// parseAmount parses a user supplied number. Thousands separators and a
// trailing percent sign are accepted: "1,000", "12.5%".
func parseAmount(field, s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	if cleaned == "" {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" cannot be empty")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("invalid %s %q: not a number", field, s))
	}
	return d, nil
}

// requireText rejects blank text before it reaches the store.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, field+" cannot be empty")
	}
	return s, nil
}

// shortID is the display form of an id; any unique prefix of the full id
// is accepted back as a reference.
func shortID(id fmt.Stringer) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// resolve finds the single item referenced by ref.
// Logic:
//   - an id prefix (case-insensitive) matching exactly one item wins
//   - otherwise an exact, case-insensitive name match is tried
//   - zero matches -> ErrNotFound, several -> ErrInvalidInput
func resolve[T any](items []T, ref, kind string, id func(T) string, name func(T) string) (T, error) {
	var zero T
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return zero, apperrors.WithMessage(apperrors.ErrInvalidInput, kind+" reference cannot be empty")
	}

	match := func(pred func(T) bool) []T {
		var found []T
		for _, it := range items {
			if pred(it) {
				found = append(found, it)
			}
		}
		return found
	}

	found := match(func(it T) bool { return strings.HasPrefix(strings.ToLower(id(it)), ref) })
	if len(found) == 0 {
		found = match(func(it T) bool { return strings.ToLower(name(it)) == ref })
	}

	switch len(found) {
	case 0:
		return zero, apperrors.WithMessage(apperrors.ErrNotFound, fmt.Sprintf("%s %q not found", kind, ref))
	case 1:
		return found[0], nil
	default:
		return zero, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s %q is ambiguous: %d matches", kind, ref, len(found)))
	}
}

func resolveHolding(holdings []domain.Holding, ref string) (domain.Holding, error) {
	return resolve(holdings, ref, "holding",
		func(h domain.Holding) string { return h.ID.String() },
		func(h domain.Holding) string { return h.Name },
	)
}

func resolvePreset(presets []domain.PortfolioPreset, ref string) (domain.PortfolioPreset, error) {
	return resolve(presets, ref, "preset",
		func(p domain.PortfolioPreset) string { return p.ID.String() },
		func(p domain.PortfolioPreset) string { return p.Name },
	)
}

// resolveEvent matches a numeric ref against ids exactly and anything else
// against titles.
func resolveEvent(events []domain.CalendarEvent, ref string) (domain.CalendarEvent, error) {
	if id, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64); err == nil {
		for _, e := range events {
			if e.ID == id {
				return e, nil
			}
		}
		return domain.CalendarEvent{}, apperrors.WithMessage(apperrors.ErrNotFound, fmt.Sprintf("event %d not found", id))
	}
	return resolve(events, ref, "event",
		func(domain.CalendarEvent) string { return "" },
		func(e domain.CalendarEvent) string { return e.Title },
	)
}

// parseFontScale accepts the step number or its name.
func parseFontScale(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "small":
		return domain.FontScaleSmall, nil
	case "1", "medium":
		return domain.FontScaleMedium, nil
	case "2", "large":
		return domain.FontScaleLarge, nil
	}
	return 0, apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("invalid font scale %q: want small, medium or large", s))
}

// parseSwitch accepts on/off style booleans.
func parseSwitch(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("invalid %s %q: want on or off", field, s))
}
