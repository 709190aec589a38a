package calc

import (
	"github.com/shopspring/decimal"
)

const (
	DefaultImpressionsPerHour = 300
	MaxImpressionsPerHour     = 10000
	MaxDays                   = 365
)

var (
	maxHoursPerDay = decimal.NewFromInt(16)
	maxOrderValue  = decimal.NewFromInt(1_000_000)
	maxSpend       = decimal.NewFromInt(100_000_000)
	thousand       = decimal.NewFromInt(1000)
	hundred        = decimal.NewFromInt(100)
)

// ROIInput describes a campaign. ConversionRate is a fraction, 0.002 is 0.2%.
type ROIInput struct {
	Bikes              int             `json:"bikes"              example:"10"`
	HoursPerDay        decimal.Decimal `json:"hoursPerDay"        example:"6"`
	Days               int             `json:"days"               example:"30"`
	ImpressionsPerHour int             `json:"impressionsPerHour" example:"300"`
	ConversionRate     decimal.Decimal `json:"conversionRate"     example:"0.002"`
	AverageOrderValue  decimal.Decimal `json:"averageOrderValue"  example:"25"`
	Spend              decimal.Decimal `json:"spend"              example:"4900"`
}

type ROIResult struct {
	Impressions decimal.Decimal `json:"impressions"`
	Conversions decimal.Decimal `json:"conversions"`
	Revenue     decimal.Decimal `json:"revenue"`
	Spend       decimal.Decimal `json:"spend"`
	ROI         decimal.Decimal `json:"roi"`
	ROIPercent  decimal.Decimal `json:"roiPercent"`
	CPM         decimal.Decimal `json:"cpm"`
}

func (in ROIInput) Validate() error {
	errs := FieldErrors{}
	errs.intRange("bikes", in.Bikes, 1, MaxBikes)
	errs.intRange("days", in.Days, 1, MaxDays)
	if in.ImpressionsPerHour != 0 {
		errs.intRange("impressionsPerHour", in.ImpressionsPerHour, 1, MaxImpressionsPerHour)
	}
	errs.decRange("hoursPerDay", in.HoursPerDay, decimal.Zero, maxHoursPerDay, false)
	errs.decRange("conversionRate", in.ConversionRate, decimal.Zero, decimal.NewFromInt(1), true)
	errs.decRange("averageOrderValue", in.AverageOrderValue, decimal.Zero, maxOrderValue, true)
	errs.decRange("spend", in.Spend, decimal.Zero, maxSpend, false)
	return errs.orNil()
}

// ROI projects reach and return for a campaign.
func ROI(in ROIInput) (ROIResult, error) {
	if err := in.Validate(); err != nil {
		return ROIResult{}, err
	}
	iph := in.ImpressionsPerHour
	if iph == 0 {
		iph = DefaultImpressionsPerHour
	}

	impressions := decimal.NewFromInt(int64(in.Bikes)).
		Mul(in.HoursPerDay).
		Mul(decimal.NewFromInt(int64(in.Days))).
		Mul(decimal.NewFromInt(int64(iph))).
		Floor()
	conversions := impressions.Mul(in.ConversionRate)
	revenue := conversions.Mul(in.AverageOrderValue)
	roi := revenue.Sub(in.Spend).Div(in.Spend)

	cpm := decimal.Zero
	if impressions.IsPositive() {
		cpm = in.Spend.Div(impressions).Mul(thousand)
	}

	return ROIResult{
		Impressions: impressions,
		Conversions: conversions.Round(2),
		Revenue:     revenue.Round(2),
		Spend:       in.Spend.Round(2),
		ROI:         roi.Round(4),
		ROIPercent:  roi.Mul(hundred).Round(2),
		CPM:         cpm.Round(2),
	}, nil
}
