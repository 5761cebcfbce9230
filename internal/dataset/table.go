package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// DataFormatError indicates a source table that cannot be used: a missing
// required column, an unreadable file, or a duplicated subject identifier.
type DataFormatError struct {
	File   string
	Column string
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: missing required column %s", e.File, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// Table is an immutable delimited table keyed by subject identifier (SEQN).
// Row order from the source file is preserved in SEQNs.
type Table struct {
	Name    string
	Columns []string

	index map[string]int
	rows  map[int64][]string
	seqns []int64
}

// Len reports the number of subject rows.
func (t *Table) Len() int { return len(t.seqns) }

// SEQNs returns subject identifiers in file order. Callers must not mutate it.
func (t *Table) SEQNs() []int64 { return t.seqns }

// Has reports whether the table contains a row for the given subject.
func (t *Table) Has(seqn int64) bool {
	_, ok := t.rows[seqn]
	return ok
}

// Float returns the numeric value of column col for the given subject.
// Missing cells (empty or the NHANES "." placeholder) and non-numeric values
// report ok=false.
func (t *Table) Float(seqn int64, col string) (float64, bool) {
	row, ok := t.rows[seqn]
	if !ok {
		return 0, false
	}
	idx, ok := t.index[normalizeName(col)]
	if !ok || idx >= len(row) {
		return 0, false
	}
	return parseNumeric(row[idx])
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseNumeric parses a cell tolerantly: surrounding space is trimmed and a
// comma decimal separator is accepted when no dot is present.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" || raw == "." {
		return 0, false
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
