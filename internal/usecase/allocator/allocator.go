// Package allocator plans money movements that bring holdings back to
// their target ratios: splitting a new deposit, or transfers between
// holdings.
package allocator

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/rebalancer/internal/domain"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
	"github.com/simaogato/rebalancer/internal/usecase/derivation"
)

// Contribution is the part of a deposit assigned to one holding.
type Contribution struct {
	Holding domain.Holding
	Amount  decimal.Decimal
}

// PlanContribution splits a deposit across holdings so the portfolio moves
// toward its target ratios without selling anything.
// Returns one Contribution per holding, in holding order.
// Logic:
//  1. New total = current total + deposit
//  2. Shortfall of each holding = max(0, target value at the new total - current value)
//  3. If the deposit covers every shortfall, each holding gets its shortfall
//     and the rest is split by target ratio (percent of the remainder).
//     Otherwise the deposit is split in proportion to the shortfalls.
//  4. Whatever rounding leaves over goes to the holding with the largest
//     weight (the remainder item)
//
// Safety: Ensures the contributions add up to the deposit exactly
func PlanContribution(deposit decimal.Decimal, holdings []domain.Holding) ([]Contribution, error) {
	if deposit.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deposit must be positive")
	}
	if len(holdings) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "holdings list cannot be empty")
	}

	newTotal := derivation.TotalAssets(holdings).Add(deposit)

	shortfalls := make([]decimal.Decimal, len(holdings))
	shortfallSum := decimal.Zero
	for i, h := range holdings {
		shortfalls[i] = decimal.Max(decimal.Zero, derivation.Deviation(h, newTotal))
		shortfallSum = shortfallSum.Add(shortfalls[i])
	}

	plan := make([]Contribution, len(holdings))
	var weights []decimal.Decimal

	if shortfallSum.LessThanOrEqual(deposit) {
		// Step 3a: Cover every shortfall, split the leftover by target ratio
		weights = make([]decimal.Decimal, len(holdings))
		ratioSum := decimal.Zero
		for i, h := range holdings {
			weights[i] = decimal.Max(decimal.Zero, h.TargetRatio)
			ratioSum = ratioSum.Add(weights[i])
		}

		leftover := deposit.Sub(shortfallSum)
		for i, h := range holdings {
			amount := shortfalls[i]
			if ratioSum.IsPositive() {
				amount = amount.Add(leftover.Mul(weights[i]).Div(ratioSum))
			}
			plan[i] = Contribution{Holding: h, Amount: amount}
		}
	} else {
		// Step 3b: Not enough to cover everything, split by shortfall
		weights = shortfalls
		for i, h := range holdings {
			plan[i] = Contribution{Holding: h, Amount: deposit.Mul(shortfalls[i]).Div(shortfallSum)}
		}
	}

	// Step 4: Assign what is left to the remainder item
	allocated := decimal.Zero
	for _, c := range plan {
		allocated = allocated.Add(c.Amount)
	}
	r := remainderIndex(weights)
	plan[r].Amount = plan[r].Amount.Add(deposit.Sub(allocated))

	return plan, nil
}

// remainderIndex returns the index of the largest weight, the first one
// on ties.
func remainderIndex(weights []decimal.Decimal) int {
	best := 0
	for i, w := range weights {
		if w.GreaterThan(weights[best]) {
			best = i
		}
	}
	return best
}
