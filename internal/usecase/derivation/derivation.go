// Package derivation holds the pure computations the presentation layer
// builds on: total assets, target value, deviation and share of a holding.
// Their numeric edge cases are part of the contract.
package derivation

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/rebalancer/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// TotalAssets calculates the sum of CurrentValue over all holdings
// Returns 0 for an empty collection
func TotalAssets(holdings []domain.Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.CurrentValue)
	}
	return total
}

// TargetValue calculates the value a holding should have at its target ratio
// Logic: TargetValue = TotalAssets * (TargetRatio / 100)
func TargetValue(h domain.Holding, totalAssets decimal.Decimal) decimal.Decimal {
	return totalAssets.Mul(h.TargetRatio.Div(hundred))
}

// Deviation calculates how far a holding is from its target value
// Logic: Deviation = TargetValue - CurrentValue
//   - Positive: under target, buy more
//   - Negative: over target, trim
func Deviation(h domain.Holding, totalAssets decimal.Decimal) decimal.Decimal {
	return TargetValue(h, totalAssets).Sub(h.CurrentValue)
}

// SharePercentage calculates the holding's current share of total assets in percent
// Returns 0 when totalAssets is not positive (no division by zero)
func SharePercentage(h domain.Holding, totalAssets decimal.Decimal) decimal.Decimal {
	if !totalAssets.IsPositive() {
		return decimal.Zero
	}
	return h.CurrentValue.Div(totalAssets).Mul(hundred)
}

// TargetRatioSum sums the target ratios of holdings. Nothing requires the
// sum to be 100; presentation uses it to warn about unnormalised targets.
func TargetRatioSum(holdings []domain.Holding) decimal.Decimal {
	sum := decimal.Zero
	for _, h := range holdings {
		sum = sum.Add(h.TargetRatio)
	}
	return sum
}

// Allocation is one row of a rebalancing breakdown.
type Allocation struct {
	Holding     domain.Holding
	TargetValue decimal.Decimal
	Deviation   decimal.Decimal
	Share       decimal.Decimal // Current share of total assets in percent
	Favorable   bool            // Deviation >= 0
}

// Breakdown computes an Allocation row per holding, in holding order.
func Breakdown(holdings []domain.Holding, totalAssets decimal.Decimal) []Allocation {
	rows := make([]Allocation, 0, len(holdings))
	for _, h := range holdings {
		deviation := Deviation(h, totalAssets)
		rows = append(rows, Allocation{
			Holding:     h,
			TargetValue: TargetValue(h, totalAssets),
			Deviation:   deviation,
			Share:       SharePercentage(h, totalAssets),
			Favorable:   !deviation.IsNegative(),
		})
	}
	return rows
}
