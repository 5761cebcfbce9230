// Package cohort joins the three source tables into the analysis table the
// statistical stage consumes: one row per usable subject with both derived
// scores. Subjects with any missing required field are excluded, never imputed.
package cohort

import (
	"errors"
	"fmt"
	"sort"

	"github.com/KaramelBytes/dietrisk-cli/internal/dataset"
	"github.com/KaramelBytes/dietrisk-cli/internal/score"
)

// InsufficientDataError indicates too few complete subjects remained after
// exclusions. Terminal for the run; no report output is produced.
type InsufficientDataError struct {
	Usable    int
	MinSample int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d usable subjects after exclusions (minimum %d)", e.Usable, e.MinSample)
}

// Subject is one row of the analysis table.
type Subject struct {
	SEQN    int64
	HEI     float64
	CVDRisk float64
	Age     float64
	Sex     score.Sex
}

// Exclusions counts dropped subjects by reason. A subject is counted once,
// under the first reason that applied.
type Exclusions struct {
	NotInAllTables     int
	MissingDemographic int
	OutsideAgeWindow   int
	IncompleteDiet     int
	IncompleteClinical int
}

// Total reports the number of excluded subjects.
func (e Exclusions) Total() int {
	return e.NotInAllTables + e.MissingDemographic + e.OutsideAgeWindow + e.IncompleteDiet + e.IncompleteClinical
}

// AnalysisTable is the joined, scored cohort, sorted by SEQN.
type AnalysisTable struct {
	Subjects []Subject
	Excluded Exclusions
	// Candidates is the demographics row count before exclusions.
	Candidates int
}

// Options bounds the study window and the usable-sample floor.
type Options struct {
	AgeMin    int
	AgeMax    int
	MinSample int
}

// DefaultOptions mirrors the study design: adults 30–74, at least 30 subjects.
func DefaultOptions() Options {
	return Options{AgeMin: 30, AgeMax: 74, MinSample: 30}
}

// Build joins the bundle by SEQN, derives both scores, and applies exclusions.
// Returns InsufficientDataError when fewer than MinSample subjects survive.
func Build(b *dataset.Bundle, opt Options) (*AnalysisTable, error) {
	at := &AnalysisTable{Candidates: b.Demographics.Len()}

	for _, seqn := range b.Demographics.SEQNs() {
		if !b.Diet.Has(seqn) || !b.Clinical.Has(seqn) {
			at.Excluded.NotInAllTables++
			continue
		}
		age, okAge := b.Demographics.Float(seqn, "RIDAGEYR")
		sexCode, okSex := b.Demographics.Float(seqn, "RIAGENDR")
		sex, okParse := score.Sex(0), false
		if okSex {
			sex, okParse = score.ParseSex(sexCode)
		}
		if !okAge || !okParse {
			at.Excluded.MissingDemographic++
			continue
		}
		if age < float64(opt.AgeMin) || age > float64(opt.AgeMax) {
			at.Excluded.OutsideAgeWindow++
			continue
		}

		intake, ok := dietIntake(b.Diet, seqn)
		if !ok {
			at.Excluded.IncompleteDiet++
			continue
		}
		hei, err := score.HEI(intake)
		if err != nil {
			if errors.Is(err, score.ErrIncomplete) {
				at.Excluded.IncompleteDiet++
				continue
			}
			return nil, err
		}

		profile, ok := clinicalProfile(b.Clinical, seqn, age, sex)
		if !ok {
			at.Excluded.IncompleteClinical++
			continue
		}
		risk, err := score.Framingham(profile)
		if err != nil {
			if errors.Is(err, score.ErrIncomplete) {
				at.Excluded.IncompleteClinical++
				continue
			}
			return nil, err
		}

		at.Subjects = append(at.Subjects, Subject{
			SEQN:    seqn,
			HEI:     hei,
			CVDRisk: risk,
			Age:     age,
			Sex:     sex,
		})
	}

	// Deterministic downstream output regardless of source file order.
	sort.Slice(at.Subjects, func(i, j int) bool { return at.Subjects[i].SEQN < at.Subjects[j].SEQN })

	if len(at.Subjects) < opt.MinSample {
		return nil, &InsufficientDataError{Usable: len(at.Subjects), MinSample: opt.MinSample}
	}
	return at, nil
}

func dietIntake(t *dataset.Table, seqn int64) (score.DietIntake, bool) {
	get := fieldReader(t, seqn)
	d := score.DietIntake{
		Energy:          get("KCAL"),
		TotalFruits:     get("F_TOTAL"),
		WholeFruits:     get("F_WHOLE"),
		TotalVegetables: get("V_TOTAL"),
		GreensAndBeans:  get("V_LEGUMES"),
		WholeGrains:     get("G_WHOLE"),
		RefinedGrains:   get("G_REFINED"),
		Dairy:           get("D_TOTAL"),
		TotalProtein:    get("PF_TOTAL"),
		SeafoodPlant:    get("PF_SEAPLANT"),
		SodiumMg:        get("SODIUM"),
		AddedSugarsG:    get("ADD_SUGARS"),
		SatFatG:         get("SFAT"),
		MonoFatG:        get("MFAT"),
		PolyFatG:        get("PFAT"),
	}
	return d, complete(t, seqn, dataset.DietColumns)
}

func clinicalProfile(t *dataset.Table, seqn int64, age float64, sex score.Sex) (score.ClinicalProfile, bool) {
	get := fieldReader(t, seqn)
	p := score.ClinicalProfile{
		Age:        age,
		Sex:        sex,
		TotalChol:  get("TOTAL_CHOL"),
		HDLChol:    get("HDL_CHOL"),
		SystolicBP: get("SYS_BP"),
		TreatedBP:  get("BP_MEDS") != 0,
		Smoker:     get("SMOKER") != 0,
		Diabetic:   get("DIABETES") != 0,
	}
	return p, complete(t, seqn, dataset.ClinicalColumns)
}

// fieldReader returns a closure yielding zero for missing cells; completeness
// is checked separately so a legitimate zero is not confused with absence.
func fieldReader(t *dataset.Table, seqn int64) func(col string) float64 {
	return func(col string) float64 {
		v, _ := t.Float(seqn, col)
		return v
	}
}

func complete(t *dataset.Table, seqn int64, cols []string) bool {
	for _, col := range cols {
		if col == "SEQN" {
			continue
		}
		if _, ok := t.Float(seqn, col); !ok {
			return false
		}
	}
	return true
}
