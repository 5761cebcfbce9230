package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
	"github.com/KaramelBytes/dietrisk-cli/internal/score"
)

// GroupSummary aggregates risk within one subgroup of the cohort.
type GroupSummary struct {
	Key        string
	N          int
	MeanHEI    float64
	MeanRisk   float64
	StdRisk    float64
	MedianRisk float64
}

// ByHEIQuartile splits the cohort into quartiles of diet quality (Q1 lowest)
// and summarizes risk per quartile. Quartile edges come from the cohort's own
// HEI distribution.
func ByHEIQuartile(at *cohort.AnalysisTable) []GroupSummary {
	n := len(at.Subjects)
	if n == 0 {
		return nil
	}
	hei := make([]float64, n)
	for i, s := range at.Subjects {
		hei[i] = s.HEI
	}
	sort.Float64s(hei)
	q1 := quantile(hei, 0.25)
	q2 := quantile(hei, 0.50)
	q3 := quantile(hei, 0.75)

	keys := []string{"Q1", "Q2", "Q3", "Q4"}
	buckets := make(map[string][]cohort.Subject, 4)
	for _, s := range at.Subjects {
		var k string
		switch {
		case s.HEI <= q1:
			k = "Q1"
		case s.HEI <= q2:
			k = "Q2"
		case s.HEI <= q3:
			k = "Q3"
		default:
			k = "Q4"
		}
		buckets[k] = append(buckets[k], s)
	}
	return summarize(keys, buckets)
}

// BySex summarizes risk per sex.
func BySex(at *cohort.AnalysisTable) []GroupSummary {
	buckets := make(map[string][]cohort.Subject, 2)
	for _, s := range at.Subjects {
		buckets[s.Sex.String()] = append(buckets[s.Sex.String()], s)
	}
	return summarize([]string{score.Male.String(), score.Female.String()}, buckets)
}

// Age bands follow the study design.
var ageBands = []struct {
	label string
	lo    float64
	hi    float64 // exclusive, except the last band
}{
	{"30-44", 30, 45},
	{"45-59", 45, 60},
	{"60-74", 60, 75},
}

// AgeBandLabel reports the study age band for age, or "other" for an age
// outside every band (only possible with a widened age window).
func AgeBandLabel(age float64) string {
	for _, b := range ageBands {
		if age >= b.lo && age < b.hi {
			return b.label
		}
	}
	return "other"
}

// AgeBandLabels lists the band labels in study order, without "other".
func AgeBandLabels() []string {
	labels := make([]string, len(ageBands))
	for i, b := range ageBands {
		labels[i] = b.label
	}
	return labels
}

// ByAgeBand summarizes risk per age band.
func ByAgeBand(at *cohort.AnalysisTable) []GroupSummary {
	keys := AgeBandLabels()
	buckets := make(map[string][]cohort.Subject, len(ageBands)+1)
	for _, s := range at.Subjects {
		k := AgeBandLabel(s.Age)
		buckets[k] = append(buckets[k], s)
	}
	if len(buckets["other"]) > 0 {
		keys = append(keys, "other")
	}
	return summarize(keys, buckets)
}

// summarize emits groups in the fixed key order, skipping empty ones, so the
// report is deterministic.
func summarize(keys []string, buckets map[string][]cohort.Subject) []GroupSummary {
	out := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		subjects := buckets[k]
		if len(subjects) == 0 {
			continue
		}
		g := GroupSummary{Key: k, N: len(subjects)}
		risks := make([]float64, len(subjects))
		for i, s := range subjects {
			g.MeanHEI += s.HEI
			g.MeanRisk += s.CVDRisk
			risks[i] = s.CVDRisk
		}
		g.MeanHEI /= float64(len(subjects))
		g.MeanRisk /= float64(len(subjects))
		if len(risks) > 1 {
			g.StdRisk = stat.StdDev(risks, nil)
		}
		sort.Float64s(risks)
		g.MedianRisk = quantile(risks, 0.5)
		out = append(out, g)
	}
	return out
}
