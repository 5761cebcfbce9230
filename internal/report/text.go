// Package report renders the analysis as a text summary, charts, and an
// optional cohort CSV. Output is deterministic: identical input data produces
// byte-identical text, so nothing here consults the clock or map order.
package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/dietrisk-cli/internal/stats"
)

// Text renders the full summary in a compact sectioned format.
func Text(a *stats.Analysis) string {
	var b strings.Builder
	at := a.Cohort

	b.WriteString("[STUDY SUMMARY]\n")
	b.WriteString("Diet quality (HEI-2015) vs predicted 10-year CVD risk (Framingham)\n")
	b.WriteString(fmt.Sprintf("Subjects analyzed: %d of %d candidates (%d excluded)\n",
		len(at.Subjects), at.Candidates, at.Excluded.Total()))

	b.WriteString("\n[EXCLUSIONS]\n")
	b.WriteString(fmt.Sprintf("- not present in all source tables: %d\n", at.Excluded.NotInAllTables))
	b.WriteString(fmt.Sprintf("- missing demographics: %d\n", at.Excluded.MissingDemographic))
	b.WriteString(fmt.Sprintf("- outside age window: %d\n", at.Excluded.OutsideAgeWindow))
	b.WriteString(fmt.Sprintf("- incomplete dietary intake: %d\n", at.Excluded.IncompleteDiet))
	b.WriteString(fmt.Sprintf("- incomplete clinical profile: %d\n", at.Excluded.IncompleteClinical))

	b.WriteString("\n[DESCRIPTIVES]\n")
	writeDescriptives(&b, "HEI-2015", a.HEI)
	writeDescriptives(&b, "CVD risk (%)", a.Risk)
	writeDescriptives(&b, "Age (years)", a.Age)

	b.WriteString("\n[CORRELATION]\n")
	c := a.Correlation
	b.WriteString(fmt.Sprintf("HEI-2015 ~ CVD risk: r=%.3f, t=%.3f, p=%.3e (n=%d)\n", c.R, c.T, c.P, c.N))

	b.WriteString("\n[REGRESSION] CVD risk ~ HEI + age + sex\n")
	b.WriteString(fmt.Sprintf("%-10s %12s %10s %8s %12s\n", "term", "estimate", "stderr", "t", "p"))
	for _, co := range a.Model.Coefficients {
		b.WriteString(fmt.Sprintf("%-10s %12.4f %10.4f %8.3f %12.3e\n",
			co.Name, co.Estimate, co.StdErr, co.T, co.P))
	}
	b.WriteString(fmt.Sprintf("R²=%.4f, residual df=%d, n=%d\n", a.Model.R2, a.Model.DF, a.Model.N))

	writeGroups(&b, "[RISK BY HEI QUARTILE]", a.Quartiles)
	writeGroups(&b, "[RISK BY SEX]", a.Sexes)
	writeGroups(&b, "[RISK BY AGE BAND]", a.AgeBands)

	return b.String()
}

func writeDescriptives(b *strings.Builder, name string, d stats.Descriptives) {
	b.WriteString(fmt.Sprintf("- %s: n=%d, mean %.4f, std %.4f, min %.4f, median %.4f, max %.4f\n",
		name, d.N, d.Mean, d.Std, d.Min, d.Median, d.Max))
}

func writeGroups(b *strings.Builder, heading string, groups []stats.GroupSummary) {
	b.WriteString("\n" + heading + "\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("- %s (n=%d): mean risk %.4f, sd %.4f, median risk %.4f, mean HEI %.4f\n",
			g.Key, g.N, g.MeanRisk, g.StdRisk, g.MedianRisk, g.MeanHEI))
	}
}
