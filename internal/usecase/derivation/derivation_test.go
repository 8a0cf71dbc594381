package derivation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/rebalancer/internal/domain"
)

func holding(name string, ratio, value int64) domain.Holding {
	return domain.Holding{
		ID:           uuid.New(),
		Name:         name,
		TargetRatio:  decimal.NewFromInt(ratio),
		CurrentValue: decimal.NewFromInt(value),
	}
}

func TestTotalAssets(t *testing.T) {
	tests := []struct {
		name     string
		holdings []domain.Holding
		want     string
	}{
		{name: "empty collection is zero", holdings: nil, want: "0"},
		{name: "single holding", holdings: []domain.Holding{holding("X", 10, 1000)}, want: "1000"},
		{
			name:     "sum of current values",
			holdings: []domain.Holding{holding("Fund", 50, 500000), holding("Bond", 50, 300000)},
			want:     "800000",
		},
		{
			name: "fractional values are exact",
			holdings: []domain.Holding{
				{ID: uuid.New(), Name: "A", CurrentValue: decimal.RequireFromString("0.1")},
				{ID: uuid.New(), Name: "B", CurrentValue: decimal.RequireFromString("0.2")},
			},
			want: "0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalAssets(tt.holdings).String())
		})
	}
}

func TestDeviation_SignConvention(t *testing.T) {
	total := decimal.NewFromInt(1000)

	tests := []struct {
		name    string
		holding domain.Holding
		want    string
	}{
		{name: "under target is positive", holding: holding("Under", 50, 300), want: "200"},
		{name: "over target is negative", holding: holding("Over", 20, 500), want: "-300"},
		{name: "on target is zero", holding: holding("Even", 25, 250), want: "0"},
		{name: "zero ratio wants everything sold", holding: holding("Drop", 0, 100), want: "-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deviation(tt.holding, total)
			assert.Equal(t, tt.want, got.String())

			// Deviation = T * ratio / 100 - value
			expected := total.Mul(tt.holding.TargetRatio).Div(decimal.NewFromInt(100)).Sub(tt.holding.CurrentValue)
			assert.True(t, expected.Equal(got))
		})
	}
}

func TestSharePercentage(t *testing.T) {
	h := holding("Fund", 50, 500000)

	assert.Equal(t, "62.5", SharePercentage(h, decimal.NewFromInt(800000)).String())
	assert.Equal(t, "100", SharePercentage(h, decimal.NewFromInt(500000)).String())
	assert.True(t, SharePercentage(h, decimal.Zero).IsZero(), "zero total must not divide by zero")
	assert.True(t, SharePercentage(h, decimal.NewFromInt(-1)).IsZero())
}

func TestScenario_FundAndBond(t *testing.T) {
	fund := holding("Fund", 50, 500000)
	bond := holding("Bond", 50, 300000)

	total := TotalAssets([]domain.Holding{fund, bond})
	assert.Equal(t, "800000", total.String())
	assert.Equal(t, "400000", TargetValue(fund, total).String())
	assert.Equal(t, "-100000", Deviation(fund, total).String())
	assert.Equal(t, "100000", Deviation(bond, total).String())
}

func TestBreakdown(t *testing.T) {
	holdings := []domain.Holding{holding("Fund", 50, 500000), holding("Bond", 50, 300000)}
	total := TotalAssets(holdings)

	rows := Breakdown(holdings, total)

	require.Len(t, rows, 2)
	assert.Equal(t, "Fund", rows[0].Holding.Name)
	assert.False(t, rows[0].Favorable)
	assert.Equal(t, "62.5", rows[0].Share.String())
	assert.Equal(t, "Bond", rows[1].Holding.Name)
	assert.True(t, rows[1].Favorable)
	assert.Equal(t, "400000", rows[1].TargetValue.String())
	assert.Empty(t, Breakdown(nil, decimal.Zero))
}

func TestTargetRatioSum(t *testing.T) {
	holdings := []domain.Holding{holding("A", 60, 1), holding("B", 30, 1)}

	assert.Equal(t, "90", TargetRatioSum(holdings).String())
	assert.Equal(t, "0", TargetRatioSum(nil).String())
}
