// Package fares holds the pure pricing and validity computations for
// cargo shipments and season passes.
package fares

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"railway-system/models"
)

// Base shipping cost in dollars, before weight and type surcharges.
const cargoBaseCost = 10

var cargoSurcharges = map[string]int64{
	models.CargoTypeGeneral:    0,
	models.CargoTypeFragile:    5,
	models.CargoTypePerishable: 8,
	models.CargoTypeDangerous:  15,
}

// CargoCost computes the shipping cost for a cargo booking:
// base + $1 per kg + a per-type surcharge. Route distance is not part
// of the formula.
func CargoCost(weight float64, cargoType string) decimal.Decimal {
	cost := decimal.NewFromInt(cargoBaseCost).
		Add(decimal.NewFromFloat(weight)).
		Add(decimal.NewFromInt(cargoSurcharges[cargoType]))
	return cost.Round(2)
}

var baseMonthlyRates = map[string]int64{
	models.ClassEconomy:  45,
	models.ClassBusiness: 75,
	models.ClassFirst:    120,
}

// Multipliers embed a bulk discount versus naive monthly x months:
// 10% for quarterly, 15% for biannual, 20% for annual.
var passMultipliers = map[string]string{
	models.PassMonthly:   "1",
	models.PassQuarterly: "2.7",
	models.PassBiannual:  "5.1",
	models.PassAnnual:    "9.6",
}

// PassCost computes the season pass cost from the plan length and travel
// class, rounded to 2 decimal places.
func PassCost(passType, travelClass string) decimal.Decimal {
	rate, ok := baseMonthlyRates[travelClass]
	if !ok {
		rate = baseMonthlyRates[models.ClassEconomy]
	}
	mult, ok := passMultipliers[passType]
	if !ok {
		mult = passMultipliers[models.PassMonthly]
	}
	m, _ := decimal.NewFromString(mult)
	return decimal.NewFromInt(rate).Mul(m).Round(2)
}

var passMonths = map[string]int{
	models.PassMonthly:   1,
	models.PassQuarterly: 3,
	models.PassBiannual:  6,
	models.PassAnnual:    12,
}

// PassDurationMonths returns the plan length in months, defaulting to
// monthly for an unknown plan.
func PassDurationMonths(passType string) int {
	if n, ok := passMonths[passType]; ok {
		return n
	}
	return 1
}

// ValidityEnd computes a pass's expiry from its start date and plan length.
func ValidityEnd(start time.Time, passType string) time.Time {
	return AddMonths(start, PassDurationMonths(passType))
}

// AddMonths adds n calendar months, clamping the day to the last day of
// the target month (Jan 31 + 1 month = Feb 28), unlike time.AddDate which
// would normalize into March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	firstOfTarget := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := time.Date(firstOfTarget.Year(), firstOfTarget.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// TrackingNumber produces a candidate cargo tracking number: "CRG"
// followed by 7 decimal digits. Uniqueness against existing shipments is
// the caller's responsibility.
func TrackingNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CRG%d", n.Int64()+1000000), nil
}

// NormalizeCargoType substitutes the default for a missing cargo type.
func NormalizeCargoType(t string) string {
	if t == "" {
		return models.CargoTypeGeneral
	}
	return t
}

// NormalizeWeight substitutes the default 1kg for a missing weight.
func NormalizeWeight(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

// NormalizePassType substitutes the default for a missing plan.
func NormalizePassType(t string) string {
	if t == "" {
		return models.PassMonthly
	}
	return t
}

// NormalizeClass substitutes the default for a missing travel class.
func NormalizeClass(c string) string {
	if c == "" {
		return models.ClassEconomy
	}
	return c
}
