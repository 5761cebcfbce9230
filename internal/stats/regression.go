package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
	"github.com/KaramelBytes/dietrisk-cli/internal/score"
)

// Coefficient is one fitted predictor of the risk model.
type Coefficient struct {
	Name     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64
}

// RegressionResult is the fitted OLS model risk ~ hei + age + sexFemale.
type RegressionResult struct {
	N            int
	DF           int // residual degrees of freedom
	R2           float64
	Coefficients []Coefficient
}

var riskModelTerms = []string{"intercept", "hei", "age", "sexFemale"}

// FitRiskModel fits an ordinary least squares model of CVD risk on diet
// quality, age, and a female indicator, with standard errors and two-sided
// p-values per predictor.
func FitRiskModel(at *cohort.AnalysisTable) (*RegressionResult, error) {
	n := len(at.Subjects)
	p := len(riskModelTerms)
	if n <= p {
		return nil, fmt.Errorf("regression needs more than %d subjects, have %d", p, n)
	}

	xData := make([]float64, 0, n*p)
	y := make([]float64, n)
	for i, s := range at.Subjects {
		female := 0.0
		if s.Sex == score.Female {
			female = 1
		}
		xData = append(xData, 1, s.HEI, s.Age, female)
		y[i] = s.CVDRisk
	}
	x := mat.NewDense(n, p, xData)
	yVec := mat.NewVecDense(n, y)

	// Normal equations with an explicit inverse: the covariance of the
	// estimates needs (X'X)^-1 anyway.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("design matrix is singular (collinear predictors): %w", err)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)
	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// Residual variance and fit quality.
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
	}
	meanY := stat.Mean(y, nil)
	tss := 0.0
	for i := 0; i < n; i++ {
		d := y[i] - meanY
		tss += d * d
	}
	df := n - p
	sigma2 := rss / float64(df)

	res := &RegressionResult{N: n, DF: df}
	if tss > 0 {
		res.R2 = 1 - rss/tss
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	for j, name := range riskModelTerms {
		c := Coefficient{Name: name, Estimate: beta.AtVec(j)}
		c.StdErr = math.Sqrt(sigma2 * xtxInv.At(j, j))
		if c.StdErr > 0 {
			c.T = c.Estimate / c.StdErr
			c.P = 2 * dist.Survival(math.Abs(c.T))
		}
		res.Coefficients = append(res.Coefficients, c)
	}
	return res, nil
}
