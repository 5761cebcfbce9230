// Package score derives the two per-subject study measures: the HEI-2015
// diet-quality index and the Framingham 10-year cardiovascular risk. Both are
// pure functions of a subject's raw fields; the published coefficients are
// fixed constants. Subjects whose inputs cannot support a score are excluded
// via ErrIncomplete rather than defaulted.
package score

import (
	"errors"
	"math"
)

// ErrIncomplete marks a subject whose raw fields cannot produce a valid score.
// Callers exclude such subjects from the cohort.
var ErrIncomplete = errors.New("incomplete subject data")

// DietIntake holds one subject's daily dietary totals. Food-group amounts are
// cup or ounce equivalents per the FPED; fats in grams, sodium in milligrams,
// added sugars in grams, energy in kcal.
type DietIntake struct {
	Energy float64

	TotalFruits     float64 // cup eq
	WholeFruits     float64 // cup eq
	TotalVegetables float64 // cup eq
	GreensAndBeans  float64 // cup eq
	WholeGrains     float64 // oz eq
	Dairy           float64 // cup eq
	TotalProtein    float64 // oz eq
	SeafoodPlant    float64 // oz eq
	RefinedGrains   float64 // oz eq

	SodiumMg     float64
	AddedSugarsG float64
	SatFatG      float64
	MonoFatG     float64
	PolyFatG     float64
}

// HEI-2015 component standards, expressed per 1,000 kcal. Adequacy components
// score up to max at the standard; moderation components score max at or below
// the low threshold and zero at or above the high one.
const (
	stdTotalFruits     = 0.8 // cup eq, 5 pts
	stdWholeFruits     = 0.4 // cup eq, 5 pts
	stdTotalVegetables = 1.1 // cup eq, 5 pts
	stdGreensAndBeans  = 0.2 // cup eq, 5 pts
	stdWholeGrains     = 1.5 // oz eq, 10 pts
	stdDairy           = 1.3 // cup eq, 10 pts
	stdTotalProtein    = 2.5 // oz eq, 5 pts
	stdSeafoodPlant    = 0.8 // oz eq, 5 pts

	fattyAcidRatioLo = 1.2 // 0 pts at or below
	fattyAcidRatioHi = 2.5 // 10 pts at or above

	refinedGrainsLo = 1.8 // oz eq, 10 pts at or below
	refinedGrainsHi = 4.3 // 0 pts at or above
	sodiumLoG       = 1.1 // grams, 10 pts at or below
	sodiumHiG       = 2.0 // 0 pts at or above
	addedSugarsLo   = 6.5  // % of energy, 10 pts at or below
	addedSugarsHi   = 26.0 // 0 pts at or above
	satFatLo        = 8.0  // % of energy, 10 pts at or below
	satFatHi        = 16.0 // 0 pts at or above
)

// HEI computes the HEI-2015 total (0–100) for one subject's intake.
// Zero or negative energy is an exclusion: density-based components are
// undefined without it.
func HEI(d DietIntake) (float64, error) {
	if d.Energy <= 0 {
		return 0, ErrIncomplete
	}
	for _, v := range []float64{
		d.TotalFruits, d.WholeFruits, d.TotalVegetables, d.GreensAndBeans,
		d.WholeGrains, d.Dairy, d.TotalProtein, d.SeafoodPlant, d.RefinedGrains,
		d.SodiumMg, d.AddedSugarsG, d.SatFatG, d.MonoFatG, d.PolyFatG,
	} {
		if v < 0 || math.IsNaN(v) {
			return 0, ErrIncomplete
		}
	}

	per1000 := 1000.0 / d.Energy

	total := 0.0
	total += adequacy(d.TotalFruits*per1000, stdTotalFruits, 5)
	total += adequacy(d.WholeFruits*per1000, stdWholeFruits, 5)
	total += adequacy(d.TotalVegetables*per1000, stdTotalVegetables, 5)
	total += adequacy(d.GreensAndBeans*per1000, stdGreensAndBeans, 5)
	total += adequacy(d.WholeGrains*per1000, stdWholeGrains, 10)
	total += adequacy(d.Dairy*per1000, stdDairy, 10)
	total += adequacy(d.TotalProtein*per1000, stdTotalProtein, 5)
	total += adequacy(d.SeafoodPlant*per1000, stdSeafoodPlant, 5)

	total += fattyAcidScore(d.SatFatG, d.MonoFatG, d.PolyFatG)
	total += moderation(d.RefinedGrains*per1000, refinedGrainsLo, refinedGrainsHi, 10)
	total += moderation(d.SodiumMg/1000*per1000, sodiumLoG, sodiumHiG, 10)
	total += moderation(d.AddedSugarsG*4/d.Energy*100, addedSugarsLo, addedSugarsHi, 10)
	total += moderation(d.SatFatG*9/d.Energy*100, satFatLo, satFatHi, 10)

	return clamp(total, 0, 100), nil
}

// adequacy scores a density linearly from 0 at zero intake to max at the
// standard, capped at max.
func adequacy(density, standard, max float64) float64 {
	if density <= 0 {
		return 0
	}
	s := max * density / standard
	if s > max {
		return max
	}
	return s
}

// moderation reverse-scores a density: max at or below lo, 0 at or above hi.
func moderation(density, lo, hi, max float64) float64 {
	switch {
	case density <= lo:
		return max
	case density >= hi:
		return 0
	default:
		return max * (hi - density) / (hi - lo)
	}
}

// fattyAcidScore scores (MUFA+PUFA)/SFA. The published edge rules: with no
// saturated fat but some unsaturated, the component maxes out; with no fat at
// all it scores zero.
func fattyAcidScore(sfa, mufa, pufa float64) float64 {
	unsat := mufa + pufa
	if sfa == 0 {
		if unsat > 0 {
			return 10
		}
		return 0
	}
	ratio := unsat / sfa
	switch {
	case ratio >= fattyAcidRatioHi:
		return 10
	case ratio <= fattyAcidRatioLo:
		return 0
	default:
		return 10 * (ratio - fattyAcidRatioLo) / (fattyAcidRatioHi - fattyAcidRatioLo)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
