package derivation

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/simaogato/rebalancer/internal/domain"
)

// HistorySummary describes a series of total-asset snapshots.
type HistorySummary struct {
	Count  int
	First  domain.AssetHistory
	Last   domain.AssetHistory
	Min    decimal.Decimal
	Max    decimal.Decimal
	Change decimal.Decimal // Last - First
	Mean   float64
	StdDev float64
}

// SummarizeHistory computes range and dispersion of the snapshot totals.
// Min and Max are exact; Mean and StdDev are floating point statistics.
// An empty history yields the zero summary.
func SummarizeHistory(history []domain.AssetHistory) HistorySummary {
	if len(history) == 0 {
		return HistorySummary{Min: decimal.Zero, Max: decimal.Zero, Change: decimal.Zero}
	}

	totals := make([]float64, len(history))
	minTotal, maxTotal := history[0].TotalAssets, history[0].TotalAssets
	for i, h := range history {
		totals[i] = h.TotalAssets.InexactFloat64()
		minTotal = decimal.Min(minTotal, h.TotalAssets)
		maxTotal = decimal.Max(maxTotal, h.TotalAssets)
	}

	first, last := history[0], history[len(history)-1]
	summary := HistorySummary{
		Count:  len(history),
		First:  first,
		Last:   last,
		Min:    minTotal,
		Max:    maxTotal,
		Change: last.TotalAssets.Sub(first.TotalAssets),
		Mean:   stat.Mean(totals, nil),
	}
	if len(totals) > 1 {
		summary.StdDev = stat.StdDev(totals, nil)
	}
	return summary
}
