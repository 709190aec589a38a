package handlers

import (
	"errors"
	"net/http"

	"pedalads/internal/calc"
	"pedalads/internal/logger"
	"pedalads/internal/models"
	helpers "pedalads/internal/utils/helpers"

	"go.uber.org/zap"
)

type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// Pricing
// @Summary      Campaign price quote
// @Description  Plan rate per bike-week with volume discounts (5% from 25 bikes, 10% from 50, 15% from 100) and an optional creative fee.
// @Tags         calculators
// @Accept       json
// @Produce      json
// @Param        body  body  calc.PricingInput  true  "Campaign"
// @Success      200  {object}  helpers.Response{data=calc.PricingQuote}
// @Failure      400  {object}  models.Result
// @Router       /api/calculators/pricing [post]
func (h *CalculatorHandler) Pricing(w http.ResponseWriter, r *http.Request) {
	var in calc.PricingInput
	if err := decodeJSON(w, r, &in); err != nil {
		badJSON(w)
		return
	}
	quote, err := calc.Price(in)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, quote)
}

// ROI
// @Summary      Campaign ROI projection
// @Tags         calculators
// @Accept       json
// @Produce      json
// @Param        body  body  calc.ROIInput  true  "Campaign and funnel assumptions"
// @Success      200  {object}  helpers.Response{data=calc.ROIResult}
// @Failure      400  {object}  models.Result
// @Router       /api/calculators/roi [post]
func (h *CalculatorHandler) ROI(w http.ResponseWriter, r *http.Request) {
	var in calc.ROIInput
	if err := decodeJSON(w, r, &in); err != nil {
		badJSON(w)
		return
	}
	res, err := calc.ROI(in)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, res)
}

func writeCalcError(w http.ResponseWriter, r *http.Request, err error) {
	var fe calc.FieldErrors
	if errors.As(err, &fe) {
		writeResult(w, models.Fail(http.StatusBadRequest, "Invalid data", map[string]string(fe)))
		return
	}
	logger.WithCtx(r.Context()).Error("calculator failed", zap.Error(err))
	writeResult(w, models.Fail(http.StatusInternalServerError, "calculation failed", nil))
}
