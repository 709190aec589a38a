package calc

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: expected %s, got %s", field, want, got)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name            string
		in              PricingInput
		subtotal        string
		discount        string
		total           string
		costPerBikeWeek string
	}{
		{
			name:            "starter without discount",
			in:              PricingInput{Plan: PlanStarter, Bikes: 10, Weeks: 2},
			subtotal:        "980",
			discount:        "0",
			total:           "980",
			costPerBikeWeek: "49",
		},
		{
			name:            "first tier",
			in:              PricingInput{Plan: PlanStarter, Bikes: 25, Weeks: 1},
			subtotal:        "1225",
			discount:        "61.25",
			total:           "1163.75",
			costPerBikeWeek: "46.55",
		},
		{
			name:            "growth with creative",
			in:              PricingInput{Plan: PlanGrowth, Bikes: 50, Weeks: 4, IncludeCreative: true},
			subtotal:        "7800",
			discount:        "780",
			total:           "7270",
			costPerBikeWeek: "36.35",
		},
		{
			name:            "fleet top tier",
			in:              PricingInput{Plan: PlanFleet, Bikes: 100, Weeks: 1},
			subtotal:        "2900",
			discount:        "435",
			total:           "2465",
			costPerBikeWeek: "24.65",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(tt.in)
			require.NoError(t, err)
			assertDec(t, tt.subtotal, q.Subtotal, "subtotal")
			assertDec(t, tt.discount, q.Discount, "discount")
			assertDec(t, tt.total, q.Total, "total")
			assertDec(t, tt.costPerBikeWeek, q.CostPerBikeWeek, "costPerBikeWeek")
		})
	}
}

func TestVolumeDiscount(t *testing.T) {
	assertDec(t, "0", VolumeDiscount(24), "24 bikes")
	assertDec(t, "0.05", VolumeDiscount(25), "25 bikes")
	assertDec(t, "0.05", VolumeDiscount(49), "49 bikes")
	assertDec(t, "0.10", VolumeDiscount(50), "50 bikes")
	assertDec(t, "0.15", VolumeDiscount(1000), "1000 bikes")
}

func TestPriceRejectsBadInput(t *testing.T) {
	_, err := Price(PricingInput{Plan: "platinum", Bikes: -3, Weeks: 53})

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe, 3)
	assert.Contains(t, fe, "plan")
	assert.Equal(t, "must be between 1 and 1000", fe["bikes"])
	assert.Equal(t, "must be between 1 and 52", fe["weeks"])
	assert.Equal(t, "invalid input: bikes: must be between 1 and 1000; plan: must be one of starter, growth, fleet; weeks: must be between 1 and 52", err.Error())
}
