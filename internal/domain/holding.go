package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding represents a single portfolio line item in the domain layer.
// TargetRatio is a percentage (0-100 expected, not enforced) and the
// target ratios of a holding set are never required to sum to 100.
type Holding struct {
	ID           uuid.UUID       `validate:"required" label:"id"`
	Name         string          `validate:"notblank" label:"name"`
	TargetRatio  decimal.Decimal `label:"target ratio"`
	CurrentValue decimal.Decimal `validate:"gte=0" label:"current value"` // In base currency units
}

// Validate ensures the holding adheres to domain rules
// Returns an ErrInvalidInput error if validation fails
func (h *Holding) Validate() error {
	return validateEntity("holding", h)
}

// CloneHoldings returns a value copy of holdings. A nil input yields an
// empty, non-nil slice so that views never hand out nil collections.
func CloneHoldings(holdings []Holding) []Holding {
	out := make([]Holding, len(holdings))
	copy(out, holdings)
	return out
}
