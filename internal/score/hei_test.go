package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-computed fixture: 2000 kcal, so densities are amount/2.
//
//	total fruits   1.6 cup  -> 0.80/1000kcal -> 5.00 (at standard)
//	whole fruits   0.4 cup  -> 0.20          -> 2.50
//	total veg      1.1 cup  -> 0.55          -> 2.50
//	greens/beans   0.2 cup  -> 0.10          -> 2.50
//	whole grains   1.5 oz   -> 0.75          -> 5.00
//	dairy          1.3 cup  -> 0.65          -> 5.00
//	total protein  5.0 oz   -> 2.50          -> 5.00 (at standard)
//	seafood/plant  0.4 oz   -> 0.20          -> 1.25
//	fatty acids    (25+12)/20 = 1.85         -> 5.00
//	refined grains 3.6 oz   -> 1.80          -> 10.00 (at low cut)
//	sodium         4400 mg  -> 2.20 g        -> 0.00 (above high cut)
//	added sugars   32.5 g   -> 6.5% energy   -> 10.00 (at low cut)
//	sat fat        20 g     -> 9.0% energy   -> 8.75
//	total                                       62.50
var heiFixture = DietIntake{
	Energy:          2000,
	TotalFruits:     1.6,
	WholeFruits:     0.4,
	TotalVegetables: 1.1,
	GreensAndBeans:  0.2,
	WholeGrains:     1.5,
	Dairy:           1.3,
	TotalProtein:    5.0,
	SeafoodPlant:    0.4,
	RefinedGrains:   3.6,
	SodiumMg:        4400,
	AddedSugarsG:    32.5,
	SatFatG:         20,
	MonoFatG:        25,
	PolyFatG:        12,
}

func TestHEIHandComputedFixture(t *testing.T) {
	got, err := HEI(heiFixture)
	require.NoError(t, err)
	assert.InDelta(t, 62.5, got, 1e-6)
}

func TestHEIPerfectDiet(t *testing.T) {
	d := DietIntake{
		Energy:          2000,
		TotalFruits:     2.0,
		WholeFruits:     1.0,
		TotalVegetables: 2.5,
		GreensAndBeans:  0.5,
		WholeGrains:     4.0,
		Dairy:           3.0,
		TotalProtein:    6.0,
		SeafoodPlant:    2.0,
		RefinedGrains:   1.0,
		SodiumMg:        1500,
		AddedSugarsG:    10,
		SatFatG:         10, // 4.5% energy
		MonoFatG:        30,
		PolyFatG:        20, // ratio 5.0
	}
	got, err := HEI(d)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got, 1e-6)
}

func TestHEIEmptyDietScoresModerationOnly(t *testing.T) {
	// Nothing eaten beyond energy: adequacy components all zero, moderation
	// components all max except fatty acids (no fat at all scores zero).
	d := DietIntake{Energy: 1000}
	got, err := HEI(d)
	require.NoError(t, err)
	// refined grains 10 + sodium 10 + added sugars 10 + sat fat 10
	assert.InDelta(t, 40.0, got, 1e-6)
}

func TestHEIZeroEnergyExcluded(t *testing.T) {
	_, err := HEI(DietIntake{Energy: 0})
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestHEINegativeAmountExcluded(t *testing.T) {
	d := heiFixture
	d.SodiumMg = -1
	_, err := HEI(d)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestHEIRange(t *testing.T) {
	cases := []DietIntake{
		{Energy: 500, SodiumMg: 9000, AddedSugarsG: 200, SatFatG: 60, RefinedGrains: 12},
		{Energy: 3500, TotalFruits: 9, WholeFruits: 9, TotalVegetables: 9, GreensAndBeans: 9,
			WholeGrains: 20, Dairy: 12, TotalProtein: 20, SeafoodPlant: 9,
			MonoFatG: 90, PolyFatG: 60, SatFatG: 1},
		heiFixture,
	}
	for _, d := range cases {
		got, err := HEI(d)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestFattyAcidEdgeRules(t *testing.T) {
	assert.InDelta(t, 10.0, fattyAcidScore(0, 5, 5), 1e-9)
	assert.InDelta(t, 0.0, fattyAcidScore(0, 0, 0), 1e-9)
	assert.InDelta(t, 0.0, fattyAcidScore(10, 6, 6), 1e-9) // ratio 1.2
	assert.InDelta(t, 10.0, fattyAcidScore(10, 15, 10), 1e-9)
}
