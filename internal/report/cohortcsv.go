package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
	"github.com/KaramelBytes/dietrisk-cli/internal/utils"
)

// WriteCohortCSV writes the joined analysis table, sorted by SEQN, for use in
// external tools. Byte-identical across runs on identical input.
func WriteCohortCSV(at *cohort.AnalysisTable, path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"SEQN", "HEI_SCORE", "CVD_RISK", "AGE", "SEX"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range at.Subjects {
		rec := []string{
			strconv.FormatInt(s.SEQN, 10),
			strconv.FormatFloat(s.HEI, 'f', 6, 64),
			strconv.FormatFloat(s.CVDRisk, 'f', 6, 64),
			strconv.FormatFloat(s.Age, 'f', -1, 64),
			s.Sex.String(),
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
