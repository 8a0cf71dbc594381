package derivation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simaogato/rebalancer/internal/domain"
)

func snapshot(ts int64, total int64) domain.AssetHistory {
	return domain.AssetHistory{Timestamp: ts, TotalAssets: decimal.NewFromInt(total)}
}

func TestSummarizeHistory(t *testing.T) {
	history := []domain.AssetHistory{
		snapshot(1, 1000),
		snapshot(2, 800000),
		snapshot(3, 500000),
		snapshot(4, 700000),
	}

	s := SummarizeHistory(history)

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, int64(1), s.First.Timestamp)
	assert.Equal(t, int64(4), s.Last.Timestamp)
	assert.Equal(t, "1000", s.Min.String())
	assert.Equal(t, "800000", s.Max.String())
	assert.Equal(t, "699000", s.Change.String())
	assert.InDelta(t, 500250.0, s.Mean, 1e-6)
	assert.Greater(t, s.StdDev, 0.0)
}

func TestSummarizeHistory_EdgeCases(t *testing.T) {
	empty := SummarizeHistory(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.Min.IsZero())
	assert.True(t, empty.Change.IsZero())

	single := SummarizeHistory([]domain.AssetHistory{snapshot(10, 42)})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, "42", single.Min.String())
	assert.Equal(t, "42", single.Max.String())
	assert.Equal(t, 0.0, single.StdDev)
	assert.InDelta(t, 42.0, single.Mean, 1e-9)
}
