package domain

import (
	"context"
)

// PortfolioRepository defines the interface for persisting the four portfolio collections.
// Load methods return an empty collection when nothing is stored and skip
// malformed records; they only fail when the backing store itself fails.
type PortfolioRepository interface {
	// LoadHoldings retrieves the live holding collection
	LoadHoldings(ctx context.Context) ([]Holding, error)

	// SaveHoldings overwrites the stored holding collection
	SaveHoldings(ctx context.Context, holdings []Holding) error

	// LoadHistory retrieves the asset history in insertion order
	LoadHistory(ctx context.Context) ([]AssetHistory, error)

	// SaveHistory overwrites the stored asset history
	SaveHistory(ctx context.Context, history []AssetHistory) error

	// LoadPresets retrieves the preset collection, newest first
	LoadPresets(ctx context.Context) ([]PortfolioPreset, error)

	// SavePresets overwrites the stored preset collection
	SavePresets(ctx context.Context, presets []PortfolioPreset) error

	// LoadEvents retrieves the calendar events
	LoadEvents(ctx context.Context) ([]CalendarEvent, error)

	// SaveEvents overwrites the stored calendar events
	SaveEvents(ctx context.Context, events []CalendarEvent) error
}

// SettingsRepository defines the interface for settings persistence operations
type SettingsRepository interface {
	// LoadSettings retrieves stored settings; ok is false when nothing usable is stored
	LoadSettings(ctx context.Context) (settings Settings, ok bool, err error)

	// SaveSettings overwrites the stored settings
	SaveSettings(ctx context.Context, settings Settings) error
}
