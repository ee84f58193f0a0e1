// Package rates implements the rate and eligibility engine. Everything in
// this package is a pure function over its inputs: no I/O, no clock reads,
// no draft mutation. Callers apply results to the draft themselves.
package rates

import (
	"fmt"
	"math"
	"time"

	dErrors "lingo/pkg/domain-errors"
)

// RateUnit is the billing unit a rate amount applies to.
type RateUnit string

const (
	UnitMinute    RateUnit = "minute"
	UnitHour      RateUnit = "hour"
	UnitWord      RateUnit = "word"
	UnitPer3Hours RateUnit = "per_3_hours"
	UnitPer6Hours RateUnit = "per_6_hours"
)

// ParseRateUnit validates a unit string at trust boundaries.
func ParseRateUnit(s string) (RateUnit, error) {
	switch RateUnit(s) {
	case UnitMinute, UnitHour, UnitWord, UnitPer3Hours, UnitPer6Hours:
		return RateUnit(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown rate unit %q", s))
	}
}

// blockHours returns the hours covered by one charge of a coarse unit,
// or 0 for fine-grained units.
func (u RateUnit) blockHours() float64 {
	switch u {
	case UnitPer3Hours:
		return 3
	case UnitPer6Hours:
		return 6
	default:
		return 0
	}
}

// MaxRateAmount is the upper bound accepted for any interpreter-entered amount.
const MaxRateAmount = 1000

// RateSpec is a tiered billing structure: a minimum charge block, a second
// pricing tier once the minimum elapses, and an hourly tail thereafter.
type RateSpec struct {
	Amount               float64   `json:"amount"`
	Unit                 RateUnit  `json:"unit"`
	MinimumHours         float64   `json:"minimum_hours,omitempty"`
	IntervalMinutes      int       `json:"interval_minutes,omitempty"`
	SecondIntervalAmount *float64  `json:"second_interval_amount,omitempty"`
	SecondIntervalUnit   *RateUnit `json:"second_interval_unit,omitempty"`
}

// HasSecondInterval reports whether the rate defines a second pricing tier.
func (r RateSpec) HasSecondInterval() bool {
	return r.SecondIntervalAmount != nil
}

// hourlyEquivalent converts the base amount to a per-hour figure for the tail
// tier. Word-based rates have no time dimension and return 0.
func (r RateSpec) hourlyEquivalent() float64 {
	switch r.Unit {
	case UnitMinute:
		return r.Amount * 60
	case UnitHour:
		return r.Amount
	case UnitPer3Hours:
		return r.Amount / 3
	case UnitPer6Hours:
		return r.Amount / 6
	default:
		return 0
	}
}

// minimumBlockCharge is the charge for the guaranteed minimum, and the hours
// it covers.
func (r RateSpec) minimumBlockCharge() (charge, hours float64) {
	if block := r.Unit.blockHours(); block > 0 {
		return r.Amount, block
	}
	hours = r.MinimumHours
	if hours <= 0 {
		hours = 1
	}
	switch r.Unit {
	case UnitMinute:
		return r.Amount * hours * 60, hours
	default:
		return r.Amount * hours, hours
	}
}

// ChargeFor computes the total charge for an assignment of the given elapsed
// duration under this spec. The minimum block is always charged in full; time
// beyond it is billed in started second-tier intervals while a second tier is
// defined, with any remainder at the hourly-equivalent base rate. Word-based
// rates have no duration component and always return the flat amount.
func ChargeFor(spec RateSpec, elapsed time.Duration) float64 {
	if spec.Unit == UnitWord {
		return spec.Amount
	}

	charge, coveredHours := spec.minimumBlockCharge()
	extraHours := elapsed.Hours() - coveredHours
	if extraHours <= 0 {
		return round2(charge)
	}

	if spec.HasSecondInterval() && spec.IntervalMinutes > 0 {
		intervalHours := float64(spec.IntervalMinutes) / 60
		intervals := math.Ceil(extraHours / intervalHours)
		charge += intervals * secondIntervalCharge(spec, intervalHours)
		return round2(charge)
	}

	// No second tier: implicit hourly tail on started hours.
	charge += math.Ceil(extraHours) * spec.hourlyEquivalent()
	return round2(charge)
}

// secondIntervalCharge is the price of one started second-tier interval.
func secondIntervalCharge(spec RateSpec, intervalHours float64) float64 {
	amount := *spec.SecondIntervalAmount
	unit := spec.Unit
	if spec.SecondIntervalUnit != nil {
		unit = *spec.SecondIntervalUnit
	}
	switch unit {
	case UnitMinute:
		return amount * intervalHours * 60
	case UnitHour:
		return amount * intervalHours
	default:
		return amount
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
