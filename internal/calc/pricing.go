package calc

import (
	"github.com/shopspring/decimal"
)

type Plan string

const (
	PlanStarter Plan = "starter"
	PlanGrowth  Plan = "growth"
	PlanFleet   Plan = "fleet"
)

const (
	MaxBikes = 1000
	MaxWeeks = 52
)

// weekly price per bike
var planRates = map[Plan]decimal.Decimal{
	PlanStarter: decimal.NewFromInt(49),
	PlanGrowth:  decimal.NewFromInt(39),
	PlanFleet:   decimal.NewFromInt(29),
}

var CreativeFee = decimal.NewFromInt(250)

// volume discount tiers, highest threshold first
var volumeTiers = []struct {
	minBikes int
	rate     decimal.Decimal
}{
	{100, decimal.NewFromFloat(0.15)},
	{50, decimal.NewFromFloat(0.10)},
	{25, decimal.NewFromFloat(0.05)},
}

type PricingInput struct {
	Plan            Plan `json:"plan"            example:"growth"`
	Bikes           int  `json:"bikes"           example:"50"`
	Weeks           int  `json:"weeks"           example:"4"`
	IncludeCreative bool `json:"includeCreative"`
}

type PricingQuote struct {
	Plan            Plan            `json:"plan"`
	Bikes           int             `json:"bikes"`
	Weeks           int             `json:"weeks"`
	RatePerBikeWeek decimal.Decimal `json:"ratePerBikeWeek"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountRate    decimal.Decimal `json:"discountRate"`
	Discount        decimal.Decimal `json:"discount"`
	CreativeFee     decimal.Decimal `json:"creativeFee"`
	Total           decimal.Decimal `json:"total"`
	CostPerBikeWeek decimal.Decimal `json:"costPerBikeWeek"`
}

func (in PricingInput) Validate() error {
	errs := FieldErrors{}
	if _, ok := planRates[in.Plan]; !ok {
		errs["plan"] = "must be one of starter, growth, fleet"
	}
	errs.intRange("bikes", in.Bikes, 1, MaxBikes)
	errs.intRange("weeks", in.Weeks, 1, MaxWeeks)
	return errs.orNil()
}

// VolumeDiscount returns the discount rate for a campaign of the given size.
func VolumeDiscount(bikes int) decimal.Decimal {
	for _, t := range volumeTiers {
		if bikes >= t.minBikes {
			return t.rate
		}
	}
	return decimal.Zero
}

// Price quotes a campaign. Amounts are rounded to cents.
func Price(in PricingInput) (PricingQuote, error) {
	if err := in.Validate(); err != nil {
		return PricingQuote{}, err
	}

	rate := planRates[in.Plan]
	bikeWeeks := decimal.NewFromInt(int64(in.Bikes * in.Weeks))
	subtotal := rate.Mul(bikeWeeks)
	discountRate := VolumeDiscount(in.Bikes)
	discount := subtotal.Mul(discountRate).Round(2)

	creative := decimal.Zero
	if in.IncludeCreative {
		creative = CreativeFee
	}
	total := subtotal.Sub(discount).Add(creative)

	return PricingQuote{
		Plan:            in.Plan,
		Bikes:           in.Bikes,
		Weeks:           in.Weeks,
		RatePerBikeWeek: rate,
		Subtotal:        subtotal.Round(2),
		DiscountRate:    discountRate,
		Discount:        discount,
		CreativeFee:     creative,
		Total:           total.Round(2),
		CostPerBikeWeek: total.Div(bikeWeeks).Round(2),
	}, nil
}
