package fares

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railway-system/models"
)

func TestCargoCost(t *testing.T) {
	cases := []struct {
		name      string
		weight    float64
		cargoType string
		want      string
	}{
		{"general zero weight", 0, models.CargoTypeGeneral, "10"},
		{"general", 5, models.CargoTypeGeneral, "15"},
		{"fragile", 10, models.CargoTypeFragile, "25"},
		{"perishable", 2, models.CargoTypePerishable, "20"},
		{"dangerous", 1, models.CargoTypeDangerous, "26"},
		{"fractional weight", 2.5, models.CargoTypeFragile, "17.5"},
		{"unknown type gets no surcharge", 3, "livestock", "13"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CargoCost(tc.weight, tc.cargoType)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"CargoCost(%v, %s) = %s, want %s", tc.weight, tc.cargoType, got, tc.want)
		})
	}
}

func TestCargoCost_SurchargeOrdering(t *testing.T) {
	general := CargoCost(1, models.CargoTypeGeneral)
	fragile := CargoCost(1, models.CargoTypeFragile)
	perishable := CargoCost(1, models.CargoTypePerishable)
	dangerous := CargoCost(1, models.CargoTypeDangerous)

	assert.True(t, general.LessThan(fragile))
	assert.True(t, fragile.LessThan(perishable))
	assert.True(t, perishable.LessThan(dangerous))
}

func TestPassCost(t *testing.T) {
	cases := []struct {
		passType, class string
		want            string
	}{
		{models.PassMonthly, models.ClassEconomy, "45"},
		{models.PassMonthly, models.ClassBusiness, "75"},
		{models.PassMonthly, models.ClassFirst, "120"},
		{models.PassQuarterly, models.ClassEconomy, "121.5"},
		{models.PassBiannual, models.ClassBusiness, "382.5"},
		{models.PassAnnual, models.ClassEconomy, "432"},
		{models.PassAnnual, models.ClassFirst, "1152"},
	}

	for _, tc := range cases {
		got := PassCost(tc.passType, tc.class)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"PassCost(%s, %s) = %s, want %s", tc.passType, tc.class, got, tc.want)
	}
}

func TestPassCost_AnnualBeatsTwelveMonthly(t *testing.T) {
	annual := PassCost(models.PassAnnual, models.ClassEconomy)
	twelveMonthly := PassCost(models.PassMonthly, models.ClassEconomy).Mul(decimal.NewFromInt(12))

	assert.True(t, annual.LessThan(twelveMonthly), "annual %s should undercut 12x monthly %s", annual, twelveMonthly)
}

func TestPassCost_UnknownInputsFallBack(t *testing.T) {
	assert.True(t, PassCost("", "").Equal(decimal.NewFromInt(45)))
	assert.True(t, PassCost("weekly", "cargo").Equal(decimal.NewFromInt(45)))
}

func TestValidityEnd(t *testing.T) {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		passType string
		want     time.Time
	}{
		{models.PassMonthly, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)},
		{models.PassQuarterly, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{models.PassBiannual, time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)},
		{models.PassAnnual, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got := ValidityEnd(start, tc.passType)
		assert.Equal(t, tc.want, got, "pass type %s", tc.passType)
		assert.True(t, got.After(start))
	}
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	jan31 := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))

	leapJan31 := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), AddMonths(leapJan31, 1))

	oct31 := time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC), AddMonths(oct31, 1))

	// Year rollover.
	nov15 := time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC), AddMonths(nov15, 3))
}

func TestTrackingNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^CRG\d{7}$`)

	for i := 0; i < 200; i++ {
		tn, err := TrackingNumber()
		require.NoError(t, err)
		assert.Regexp(t, pattern, tn)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	assert.Equal(t, models.CargoTypeGeneral, NormalizeCargoType(""))
	assert.Equal(t, models.CargoTypeFragile, NormalizeCargoType(models.CargoTypeFragile))
	assert.Equal(t, 1.0, NormalizeWeight(0))
	assert.Equal(t, 1.0, NormalizeWeight(-3))
	assert.Equal(t, 12.5, NormalizeWeight(12.5))
	assert.Equal(t, models.PassMonthly, NormalizePassType(""))
	assert.Equal(t, models.ClassEconomy, NormalizeClass(""))
}
