package domain

import (
	"github.com/google/uuid"
)

// PortfolioPreset is a named, saved snapshot of a holding set.
// Holdings are a value copy independent of the live holding collection:
// their IDs are preset-scoped and may duplicate live IDs.
type PortfolioPreset struct {
	ID           uuid.UUID `validate:"required" label:"id"`
	Name         string    `validate:"notblank" label:"name"`
	Description  string    `label:"description"`
	Holdings     []Holding `validate:"dive" label:"holdings"`
	LastModified int64     `validate:"gte=0" label:"last modified"` // Milliseconds since epoch
}

// Validate ensures the preset and every holding it carries adhere to domain rules
func (p *PortfolioPreset) Validate() error {
	return validateEntity("preset", p)
}

// Clone returns a deep copy of the preset.
func (p PortfolioPreset) Clone() PortfolioPreset {
	p.Holdings = CloneHoldings(p.Holdings)
	return p
}

// ClonePresets returns a deep copy of presets.
func ClonePresets(presets []PortfolioPreset) []PortfolioPreset {
	out := make([]PortfolioPreset, len(presets))
	for i, p := range presets {
		out[i] = p.Clone()
	}
	return out
}
