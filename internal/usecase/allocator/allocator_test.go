package allocator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/rebalancer/internal/domain"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
)

func holding(name string, ratio, value int64) domain.Holding {
	return domain.Holding{
		ID:           uuid.New(),
		Name:         name,
		TargetRatio:  decimal.NewFromInt(ratio),
		CurrentValue: decimal.NewFromInt(value),
	}
}

func sum(plan []Contribution) decimal.Decimal {
	total := decimal.Zero
	for _, c := range plan {
		total = total.Add(c.Amount)
	}
	return total
}

func TestPlanContribution_FundBondScenario(t *testing.T) {
	// Fund 50% = 500,000 and Bond 50% = 300,000, deposit 200,000
	// New total 1,000,000 -> target 500,000 each
	// Expected: Fund=0, Bond=200,000
	holdings := []domain.Holding{holding("Fund", 50, 500000), holding("Bond", 50, 300000)}

	plan, err := PlanContribution(decimal.NewFromInt(200000), holdings)

	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "Fund", plan[0].Holding.Name)
	assert.True(t, plan[0].Amount.IsZero(), "Fund is already at target")
	assert.True(t, plan[1].Amount.Equal(decimal.NewFromInt(200000)), "Bond should receive the whole deposit")
}

func TestPlanContribution_DepositSmallerThanShortfall(t *testing.T) {
	// New total 900,000 -> target 450,000 each; Fund is over, Bond is short by 150,000
	holdings := []domain.Holding{holding("Fund", 50, 500000), holding("Bond", 50, 300000)}

	plan, err := PlanContribution(decimal.NewFromInt(100000), holdings)

	require.NoError(t, err)
	assert.True(t, plan[0].Amount.IsZero())
	assert.True(t, plan[1].Amount.Equal(decimal.NewFromInt(100000)))
}

func TestPlanContribution_CoversShortfallsExactly(t *testing.T) {
	// New total 1,000 -> targets 500/300/200, every holding starts empty
	holdings := []domain.Holding{holding("A", 50, 0), holding("B", 30, 0), holding("C", 20, 0)}

	plan, err := PlanContribution(decimal.NewFromInt(1000), holdings)

	require.NoError(t, err)
	assert.Equal(t, "500", plan[0].Amount.String())
	assert.Equal(t, "300", plan[1].Amount.String())
	assert.Equal(t, "200", plan[2].Amount.String())
}

func TestPlanContribution_SplitsByShortfall(t *testing.T) {
	// New total 1,100 -> targets 550/330/220; shortfalls 550/330/0 exceed the deposit
	// Expected: A=100*550/880=62.5, B=100*330/880=37.5, C=0
	holdings := []domain.Holding{holding("A", 50, 0), holding("B", 30, 0), holding("C", 20, 1000)}

	plan, err := PlanContribution(decimal.NewFromInt(100), holdings)

	require.NoError(t, err)
	assert.Equal(t, "62.5", plan[0].Amount.String())
	assert.Equal(t, "37.5", plan[1].Amount.String())
	assert.True(t, plan[2].Amount.IsZero())
}

func TestPlanContribution_LeftoverSplitByRatio(t *testing.T) {
	// Ratios only add up to 80: shortfalls 400 + 400, leftover 200 split 50/50
	holdings := []domain.Holding{holding("A", 40, 0), holding("B", 40, 0)}

	plan, err := PlanContribution(decimal.NewFromInt(1000), holdings)

	require.NoError(t, err)
	assert.Equal(t, "500", plan[0].Amount.String())
	assert.Equal(t, "500", plan[1].Amount.String())
}

func TestPlanContribution_ZeroRatiosGoToRemainderItem(t *testing.T) {
	holdings := []domain.Holding{holding("A", 0, 10), holding("B", 0, 10)}

	plan, err := PlanContribution(decimal.NewFromInt(100), holdings)

	require.NoError(t, err)
	assert.Equal(t, "100", plan[0].Amount.String())
	assert.True(t, plan[1].Amount.IsZero())
}

func TestPlanContribution_DecimalPrecision(t *testing.T) {
	// Three equal thirds cannot be represented exactly; nothing may be lost
	holdings := []domain.Holding{holding("A", 1, 0), holding("B", 1, 0), holding("C", 1, 0)}
	deposit := decimal.NewFromInt(100)

	plan, err := PlanContribution(deposit, holdings)

	require.NoError(t, err)
	assert.True(t, sum(plan).Equal(deposit), "Total allocated should equal the deposit")
	assert.True(t, plan[0].Amount.GreaterThanOrEqual(plan[1].Amount), "The remainder item absorbs rounding")
}

func TestPlanContribution_InvalidInput(t *testing.T) {
	holdings := []domain.Holding{holding("A", 100, 0)}

	_, err := PlanContribution(decimal.Zero, holdings)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = PlanContribution(decimal.NewFromInt(-1), holdings)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = PlanContribution(decimal.NewFromInt(1), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
