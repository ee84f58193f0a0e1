package rates

import (
	"fmt"

	id "lingo/pkg/domain"
	dErrors "lingo/pkg/domain-errors"
)

// Language-conditional platform amounts. Phone and document interpreting are
// the only service codes priced differently for Spanish; every other code uses
// the flat platform amount regardless of language.
const (
	phoneAmountSpanish    = 0.75 // per minute
	phoneAmountOther      = 0.85
	documentAmountSpanish = 0.10 // per word
	documentAmountOther   = 0.14
)

// languageConditional maps the two language-priced service codes to their
// (spanish, other) amount pair.
var languageConditional = map[id.ServiceCode][2]float64{
	id.ServicePhone:    {phoneAmountSpanish, phoneAmountOther},
	id.ServiceDocument: {documentAmountSpanish, documentAmountOther},
}

// CustomRateInput carries interpreter-entered rate fields. Zero values mean
// "not supplied" and fall back to the platform definition.
type CustomRateInput struct {
	Amount               float64
	Unit                 RateUnit
	MinimumHours         float64
	IntervalMinutes      int
	SecondIntervalAmount *float64
	SecondIntervalUnit   *RateUnit
}

// ComputeEffectiveRate resolves the RateSpec stored on a service selection.
// speaksSpanish must reflect the draft's language list (any language named
// Spanish); it only matters for the phone and document platform amounts.
func ComputeEffectiveRate(code id.ServiceCode, platform RateSpec, rateType id.RateType, speaksSpanish bool, custom *CustomRateInput) (RateSpec, error) {
	switch rateType {
	case id.RatePlatform:
		return platformRate(code, platform, speaksSpanish), nil
	case id.RateCustom:
		if custom == nil {
			return RateSpec{}, dErrors.New(dErrors.CodeInvalidInput, "custom rate requires rate fields")
		}
		return customRate(code, platform, *custom)
	default:
		return RateSpec{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown rate type %q", rateType))
	}
}

func platformRate(code id.ServiceCode, platform RateSpec, speaksSpanish bool) RateSpec {
	spec := platform
	if pair, ok := languageConditional[code]; ok {
		if speaksSpanish {
			spec.Amount = pair[0]
		} else {
			spec.Amount = pair[1]
		}
	}
	return spec
}

func customRate(code id.ServiceCode, platform RateSpec, in CustomRateInput) (RateSpec, error) {
	if in.Amount <= 0 || in.Amount > MaxRateAmount {
		return RateSpec{}, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("rate amount must be greater than 0 and at most %d", MaxRateAmount))
	}

	if code == id.ServiceLegal || code == id.ServiceVideo {
		return coarseCustomRate(in)
	}

	spec := RateSpec{
		Amount:               in.Amount,
		Unit:                 in.Unit,
		MinimumHours:         in.MinimumHours,
		IntervalMinutes:      in.IntervalMinutes,
		SecondIntervalAmount: in.SecondIntervalAmount,
		SecondIntervalUnit:   in.SecondIntervalUnit,
	}
	if spec.Unit == "" {
		spec.Unit = platform.Unit
	}
	if spec.MinimumHours == 0 {
		spec.MinimumHours = platform.MinimumHours
	}
	if spec.IntervalMinutes == 0 {
		spec.IntervalMinutes = platform.IntervalMinutes
	}

	// A second tier is mandatory wherever the platform definition has one.
	if platform.HasSecondInterval() && !spec.HasSecondInterval() {
		return RateSpec{}, dErrors.New(dErrors.CodeValidation, "second interval rate is required for this service type")
	}
	if spec.SecondIntervalAmount != nil {
		if a := *spec.SecondIntervalAmount; a <= 0 || a > MaxRateAmount {
			return RateSpec{}, dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("second interval amount must be greater than 0 and at most %d", MaxRateAmount))
		}
	}
	return spec, nil
}

// coarseCustomRate restricts legal and video interpreting to the two block
// units. A plain hours unit is a legacy form entry and maps to per-3-hours.
func coarseCustomRate(in CustomRateInput) (RateSpec, error) {
	unit := in.Unit
	if unit == UnitHour {
		unit = UnitPer3Hours
	}
	if unit != UnitPer3Hours && unit != UnitPer6Hours {
		return RateSpec{}, dErrors.New(dErrors.CodeValidation,
			"legal and video rates must be per 3 hours or per 6 hours")
	}
	return RateSpec{Amount: in.Amount, Unit: unit}, nil
}

// LanguageRate is an optional per-language refinement of a selection's rate.
// Overrides are pure annotations; they never change eligibility.
type LanguageRate struct {
	Amount float64  `json:"amount"`
	Unit   RateUnit `json:"unit"`
}

// ValidateLanguageRate bounds-checks an override before it is stored.
func ValidateLanguageRate(lr LanguageRate) error {
	if lr.Amount <= 0 || lr.Amount > MaxRateAmount {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("language rate amount must be greater than 0 and at most %d", MaxRateAmount))
	}
	if _, err := ParseRateUnit(string(lr.Unit)); err != nil {
		return err
	}
	return nil
}
