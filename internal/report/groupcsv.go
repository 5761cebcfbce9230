package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/dietrisk-cli/internal/stats"
	"github.com/KaramelBytes/dietrisk-cli/internal/utils"
)

// WriteGroupSummaryCSV writes one subgroup breakdown (mean/std/count of risk
// per group) for use in external tools. Groups come in already ordered, so the
// file is byte-identical across runs on identical input.
func WriteGroupSummaryCSV(groups []stats.GroupSummary, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"GROUP", "N", "MEAN_RISK", "STD_RISK", "MEDIAN_RISK", "MEAN_HEI"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, g := range groups {
		rec := []string{
			g.Key,
			strconv.Itoa(g.N),
			strconv.FormatFloat(g.MeanRisk, 'f', 6, 64),
			strconv.FormatFloat(g.StdRisk, 'f', 6, 64),
			strconv.FormatFloat(g.MedianRisk, 'f', 6, 64),
			strconv.FormatFloat(g.MeanHEI, 'f', 6, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
