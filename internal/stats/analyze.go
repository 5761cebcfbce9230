package stats

import (
	"fmt"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
)

// Analysis bundles every statistic the report renders.
type Analysis struct {
	Cohort *cohort.AnalysisTable

	HEI  Descriptives
	Risk Descriptives
	Age  Descriptives

	Correlation CorrelationResult
	Model       *RegressionResult

	Quartiles []GroupSummary
	Sexes     []GroupSummary
	AgeBands  []GroupSummary
}

// Analyze runs the full statistical stage over the cohort.
func Analyze(at *cohort.AnalysisTable) (*Analysis, error) {
	n := len(at.Subjects)
	hei := make([]float64, n)
	risk := make([]float64, n)
	age := make([]float64, n)
	for i, s := range at.Subjects {
		hei[i] = s.HEI
		risk[i] = s.CVDRisk
		age[i] = s.Age
	}

	a := &Analysis{
		Cohort: at,
		HEI:    Describe(hei),
		Risk:   Describe(risk),
		Age:    Describe(age),
	}

	corr, err := PearsonHEIRisk(at)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	a.Correlation = corr

	model, err := FitRiskModel(at)
	if err != nil {
		return nil, fmt.Errorf("regression: %w", err)
	}
	a.Model = model

	a.Quartiles = ByHEIQuartile(at)
	a.Sexes = BySex(at)
	a.AgeBands = ByAgeBand(at)
	return a, nil
}
