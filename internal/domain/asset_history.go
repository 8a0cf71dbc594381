package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetHistory is an immutable snapshot of total assets at one instant.
// Snapshots are append-only; insertion order is chronological order.
type AssetHistory struct {
	Timestamp   int64           `validate:"gt=0" label:"timestamp"` // Milliseconds since epoch
	TotalAssets decimal.Decimal `label:"total assets"`
}

// Validate ensures the snapshot adheres to domain rules
func (a *AssetHistory) Validate() error {
	return validateEntity("asset history", a)
}

// Time returns the snapshot timestamp as a time.Time in UTC.
func (a AssetHistory) Time() time.Time {
	return time.UnixMilli(a.Timestamp).UTC()
}
