// Package stats runs the inferential stage over the analysis table: Pearson
// correlation with significance, the multivariable risk model, and subgroup
// aggregates. Everything is deterministic; no resampling.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
)

// Descriptives summarizes one numeric variable.
type Descriptives struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Median float64
	Max    float64
}

// Describe computes basic descriptives for xs.
func Describe(xs []float64) Descriptives {
	d := Descriptives{N: len(xs)}
	if d.N == 0 {
		return d
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Median = quantile(sorted, 0.5)
	d.Mean = stat.Mean(xs, nil)
	if d.N > 1 {
		d.Std = stat.StdDev(xs, nil)
	}
	return d
}

// CorrelationResult is a Pearson correlation with its two-sided significance.
type CorrelationResult struct {
	N int
	R float64
	T float64
	P float64
}

// PearsonHEIRisk computes the correlation between diet quality and predicted
// risk across the cohort, with a two-sided p-value from the t transform.
func PearsonHEIRisk(at *cohort.AnalysisTable) (CorrelationResult, error) {
	n := len(at.Subjects)
	if n < 3 {
		return CorrelationResult{}, fmt.Errorf("correlation needs at least 3 subjects, have %d", n)
	}
	hei := make([]float64, n)
	risk := make([]float64, n)
	for i, s := range at.Subjects {
		hei[i] = s.HEI
		risk[i] = s.CVDRisk
	}
	r := stat.Correlation(hei, risk, nil)
	if math.IsNaN(r) {
		return CorrelationResult{}, fmt.Errorf("correlation undefined: a variable has zero variance")
	}
	res := CorrelationResult{N: n, R: r}
	// t transform; a perfect correlation has zero residual variance.
	if 1-r*r <= 0 {
		res.T = math.Inf(sign(r))
		res.P = 0
		return res, nil
	}
	res.T = r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	res.P = 2 * dist.Survival(math.Abs(res.T))
	return res, nil
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

// quantile interpolates linearly on a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
