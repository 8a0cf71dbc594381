package allocator

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/rebalancer/internal/domain"
	"github.com/simaogato/rebalancer/internal/usecase/derivation"
)

// Transfer moves Amount out of an over-target holding into an
// under-target one.
type Transfer struct {
	From   domain.Holding
	To     domain.Holding
	Amount decimal.Decimal
}

// PlanTransfers pairs holdings above their target with holdings below it.
//
// Logic:
//   - Compute every holding's deviation at the current total
//   - Negative deviation (over target) -> the holding sends money
//   - Positive deviation (under target) -> the holding receives money
//   - Senders are matched to receivers in holding order; each transfer is
//     the minimum of what is left to send and what is left to receive
//
// When target ratios do not add up to 100 the sells and buys do not
// balance and the unmatched part is left out of the plan.
func PlanTransfers(holdings []domain.Holding) []Transfer {
	total := derivation.TotalAssets(holdings)

	type flow struct {
		holding domain.Holding
		amount  decimal.Decimal // always positive
	}
	var senders, receivers []*flow
	for _, h := range holdings {
		deviation := derivation.Deviation(h, total)
		if deviation.IsNegative() {
			senders = append(senders, &flow{holding: h, amount: deviation.Abs()})
		} else if deviation.IsPositive() {
			receivers = append(receivers, &flow{holding: h, amount: deviation})
		}
		// Zero deviation means the holding is on target, skip
	}

	transfers := make([]Transfer, 0)
	for _, from := range senders {
		for _, to := range receivers {
			if !to.amount.IsPositive() {
				continue
			}

			amount := decimal.Min(from.amount, to.amount)
			transfers = append(transfers, Transfer{From: from.holding, To: to.holding, Amount: amount})

			// Reduce the amounts to avoid double-counting
			from.amount = from.amount.Sub(amount)
			to.amount = to.amount.Sub(amount)

			// If we've exhausted the sending amount, move to the next sender
			if !from.amount.IsPositive() {
				break
			}
		}
	}

	return transfers
}
