package stats

import (
	"testing"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
	"github.com/KaramelBytes/dietrisk-cli/internal/score"
)

// exactLinearCohort builds risk = 30 - 0.4*hei + 0.2*age + 3*female with no
// noise, so OLS must recover the coefficients exactly.
func exactLinearCohort() *cohort.AnalysisTable {
	heis := []float64{35, 42, 48, 51, 55, 58, 63, 67, 72, 80}
	ages := []float64{31, 64, 38, 55, 47, 70, 33, 61, 44, 52}
	subjects := make([]cohort.Subject, len(heis))
	for i := range subjects {
		sex := score.Male
		female := 0.0
		if i%2 == 1 {
			sex = score.Female
			female = 1
		}
		subjects[i] = cohort.Subject{
			SEQN:    int64(i + 1),
			HEI:     heis[i],
			Age:     ages[i],
			Sex:     sex,
			CVDRisk: 30 - 0.4*heis[i] + 0.2*ages[i] + 3*female,
		}
	}
	return tableOf(subjects)
}

func TestFitRiskModelRecoversExactCoefficients(t *testing.T) {
	res, err := FitRiskModel(exactLinearCohort())
	if err != nil {
		t.Fatalf("FitRiskModel: %v", err)
	}
	if res.N != 10 || res.DF != 6 {
		t.Fatalf("n/df = %d/%d", res.N, res.DF)
	}
	want := map[string]float64{
		"intercept": 30,
		"hei":       -0.4,
		"age":       0.2,
		"sexFemale": 3,
	}
	for _, c := range res.Coefficients {
		if !almost(c.Estimate, want[c.Name], 1e-6) {
			t.Fatalf("%s = %f, want %f", c.Name, c.Estimate, want[c.Name])
		}
	}
	if !almost(res.R2, 1.0, 1e-9) {
		t.Fatalf("R2 = %f, want 1", res.R2)
	}
}

func TestFitRiskModelCoefficientOrder(t *testing.T) {
	res, err := FitRiskModel(exactLinearCohort())
	if err != nil {
		t.Fatalf("FitRiskModel: %v", err)
	}
	names := make([]string, len(res.Coefficients))
	for i, c := range res.Coefficients {
		names[i] = c.Name
	}
	want := []string{"intercept", "hei", "age", "sexFemale"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("coefficient order = %v", names)
		}
	}
}

func TestFitRiskModelNoisyDataHasFinitePValues(t *testing.T) {
	at := exactLinearCohort()
	// Perturb the outcome so residual variance is nonzero.
	bumps := []float64{0.3, -0.2, 0.5, -0.4, 0.1, -0.3, 0.2, -0.1, 0.4, -0.5}
	for i := range at.Subjects {
		at.Subjects[i].CVDRisk += bumps[i]
	}
	res, err := FitRiskModel(at)
	if err != nil {
		t.Fatalf("FitRiskModel: %v", err)
	}
	for _, c := range res.Coefficients {
		if c.StdErr <= 0 {
			t.Fatalf("%s stderr = %f", c.Name, c.StdErr)
		}
		if c.P < 0 || c.P > 1 {
			t.Fatalf("%s p = %f", c.Name, c.P)
		}
	}
	if res.R2 <= 0 || res.R2 >= 1 {
		t.Fatalf("R2 = %f, want in (0,1)", res.R2)
	}
}

func TestFitRiskModelCollinearDesign(t *testing.T) {
	// Age identical to HEI makes the design matrix singular.
	subjects := make([]cohort.Subject, 8)
	for i := range subjects {
		v := float64(40 + i)
		subjects[i] = cohort.Subject{SEQN: int64(i + 1), HEI: v, Age: v, CVDRisk: 10, Sex: score.Male}
	}
	if _, err := FitRiskModel(tableOf(subjects)); err == nil {
		t.Fatalf("want error for collinear predictors")
	}
}

func TestFitRiskModelTooFewSubjects(t *testing.T) {
	if _, err := FitRiskModel(inverseCohort(4)); err == nil {
		t.Fatalf("want error for n <= predictors")
	}
}
