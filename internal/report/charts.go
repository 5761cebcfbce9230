package report

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/dietrisk-cli/internal/score"
	"github.com/KaramelBytes/dietrisk-cli/internal/stats"
)

// ScatterChart writes the HEI vs risk scatter with a simple fitted line.
func ScatterChart(a *stats.Analysis, path string) error {
	p := plot.New()
	p.Title.Text = "Diet Quality and 10-Year CVD Risk"
	p.X.Label.Text = "HEI-2015 Diet Quality Score"
	p.Y.Label.Text = "Predicted 10-Year CVD Risk (%)"

	n := len(a.Cohort.Subjects)
	pts := make(plotter.XYs, n)
	hei := make([]float64, n)
	risk := make([]float64, n)
	for i, s := range a.Cohort.Subjects {
		pts[i].X = s.HEI
		pts[i].Y = s.CVDRisk
		hei[i] = s.HEI
		risk[i] = s.CVDRisk
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	sc.GlyphStyle.Radius = vg.Points(2)
	p.Add(sc)

	// Unadjusted fitted line, matching the scatter's own two variables.
	alpha, beta := stat.LinearRegression(hei, risk, nil, false)
	line := plotter.NewFunction(func(x float64) float64 { return alpha + beta*x })
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.X.Min = a.HEI.Min
	p.X.Max = a.HEI.Max

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save scatter: %w", err)
	}
	return nil
}

type scatterGroup struct {
	label string
	pts   plotter.XYs
}

// SexScatterChart writes the HEI vs risk scatter stratified by sex.
func SexScatterChart(a *stats.Analysis, path string) error {
	groups := []scatterGroup{
		{label: score.Male.String()},
		{label: score.Female.String()},
	}
	for _, s := range a.Cohort.Subjects {
		i := 0
		if s.Sex == score.Female {
			i = 1
		}
		groups[i].pts = append(groups[i].pts, plotter.XY{X: s.HEI, Y: s.CVDRisk})
	}
	return stratifiedScatter("Diet Quality and 10-Year CVD Risk by Sex", groups, path)
}

// AgeBandScatterChart writes the HEI vs risk scatter stratified by age band.
func AgeBandScatterChart(a *stats.Analysis, path string) error {
	labels := append(stats.AgeBandLabels(), "other")
	byLabel := make(map[string]plotter.XYs, len(labels))
	for _, s := range a.Cohort.Subjects {
		k := stats.AgeBandLabel(s.Age)
		byLabel[k] = append(byLabel[k], plotter.XY{X: s.HEI, Y: s.CVDRisk})
	}
	groups := make([]scatterGroup, 0, len(labels))
	for _, l := range labels {
		groups = append(groups, scatterGroup{label: l, pts: byLabel[l]})
	}
	return stratifiedScatter("Diet Quality and 10-Year CVD Risk by Age Band", groups, path)
}

func stratifiedScatter(title string, groups []scatterGroup, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "HEI-2015 Diet Quality Score"
	p.Y.Label.Text = "Predicted 10-Year CVD Risk (%)"
	p.Legend.Top = true

	for i, g := range groups {
		if len(g.pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(g.pts)
		if err != nil {
			return fmt.Errorf("build scatter group %s: %w", g.label, err)
		}
		sc.GlyphStyle.Radius = vg.Points(2)
		sc.GlyphStyle.Color = plotutil.Color(i)
		p.Add(sc)
		p.Legend.Add(g.label, sc)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save scatter: %w", err)
	}
	return nil
}

// QuartileBarChart writes mean risk per HEI quartile as a bar chart.
func QuartileBarChart(a *stats.Analysis, path string) error {
	p := plot.New()
	p.Title.Text = "Mean CVD Risk by HEI-2015 Quartile"
	p.X.Label.Text = "HEI-2015 Quartile"
	p.Y.Label.Text = "Mean Predicted 10-Year CVD Risk (%)"

	values := make(plotter.Values, len(a.Quartiles))
	labels := make([]string, len(a.Quartiles))
	for i, g := range a.Quartiles {
		values[i] = g.MeanRisk
		labels[i] = g.Key
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save bar chart: %w", err)
	}
	return nil
}
