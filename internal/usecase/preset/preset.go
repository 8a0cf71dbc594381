// Package preset implements how saved holding sets move in and out of the
// live holding collection.
package preset

import (
	"github.com/google/uuid"

	"github.com/simaogato/rebalancer/internal/domain"
)

// Apply clones the preset's holdings for use as a new live holding set.
// Every clone gets a fresh ID from newID; preset-scoped IDs are never reused,
// so loading the same preset twice cannot produce colliding live IDs.
// Any generated ID that collides with a preset ID or an earlier clone is
// drawn again.
func Apply(p domain.PortfolioPreset, newID func() uuid.UUID) []domain.Holding {
	taken := make(map[uuid.UUID]struct{}, len(p.Holdings)*2)
	for _, h := range p.Holdings {
		taken[h.ID] = struct{}{}
	}

	holdings := make([]domain.Holding, len(p.Holdings))
	for i, h := range p.Holdings {
		id := newID()
		for {
			if _, dup := taken[id]; !dup && id != uuid.Nil {
				break
			}
			id = newID()
		}
		taken[id] = struct{}{}

		h.ID = id
		holdings[i] = h
	}
	return holdings
}

// Capture value-copies the live holdings selected by ids, preserving live
// order. An empty ids selects every holding. Unknown ids are ignored.
func Capture(live []domain.Holding, ids []uuid.UUID) []domain.Holding {
	if len(ids) == 0 {
		return domain.CloneHoldings(live)
	}

	selected := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	captured := make([]domain.Holding, 0, len(ids))
	for _, h := range live {
		if _, ok := selected[h.ID]; ok {
			captured = append(captured, h)
		}
	}
	return captured
}
