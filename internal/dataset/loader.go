package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls table reading.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects from the file extension.
	Delimiter rune
}

// Required column sets per source table. SEQN is the join key everywhere.
var (
	DemographicsColumns = []string{"SEQN", "RIDAGEYR", "RIAGENDR"}

	DietColumns = []string{
		"SEQN", "KCAL",
		"F_TOTAL", "F_WHOLE", "V_TOTAL", "V_LEGUMES",
		"G_WHOLE", "G_REFINED", "D_TOTAL",
		"PF_TOTAL", "PF_SEAPLANT",
		"SODIUM", "ADD_SUGARS",
		"SFAT", "MFAT", "PFAT",
	}

	ClinicalColumns = []string{
		"SEQN", "TOTAL_CHOL", "HDL_CHOL", "SYS_BP",
		"SMOKER", "DIABETES", "BP_MEDS",
	}
)

// Bundle holds the three loaded source tables.
type Bundle struct {
	Demographics *Table
	Diet         *Table
	Clinical     *Table
}

// Load reads the three source tables. Each must carry its required columns and
// a unique SEQN per row; anything else is a DataFormatError.
func Load(demoPath, dietPath, clinicalPath string, opt Options) (*Bundle, error) {
	demo, err := ReadTable(demoPath, opt, DemographicsColumns)
	if err != nil {
		return nil, err
	}
	diet, err := ReadTable(dietPath, opt, DietColumns)
	if err != nil {
		return nil, err
	}
	clin, err := ReadTable(clinicalPath, opt, ClinicalColumns)
	if err != nil {
		return nil, err
	}
	return &Bundle{Demographics: demo, Diet: diet, Clinical: clin}, nil
}

// ReadTable reads one delimited table and validates its required columns.
func ReadTable(path string, opt Options, required []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataFormatError{File: name, Column: required[0]}
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{
		Name:  name,
		index: make(map[string]int, len(header)),
		rows:  make(map[int64][]string),
	}
	for i, h := range header {
		clean := normalizeName(h)
		t.Columns = append(t.Columns, clean)
		if _, dup := t.index[clean]; !dup {
			t.index[clean] = i
		}
	}
	for _, col := range required {
		if _, ok := t.index[normalizeName(col)]; !ok {
			return nil, &DataFormatError{File: name, Column: normalizeName(col)}
		}
	}
	seqnIdx := t.index["SEQN"]

	rowNum := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rowNum+1, err)
		}
		rowNum++
		if seqnIdx >= len(rec) {
			return nil, &DataFormatError{File: name, Reason: fmt.Sprintf("row %d: no SEQN value", rowNum)}
		}
		raw := strings.TrimSpace(rec[seqnIdx])
		seqn, ok := parseSEQN(raw)
		if !ok {
			return nil, &DataFormatError{File: name, Reason: fmt.Sprintf("row %d: invalid SEQN %q", rowNum, raw)}
		}
		if _, dup := t.rows[seqn]; dup {
			return nil, &DataFormatError{File: name, Reason: fmt.Sprintf("duplicate SEQN %d", seqn)}
		}
		rowCopy := make([]string, len(rec))
		copy(rowCopy, rec)
		t.rows[seqn] = rowCopy
		t.seqns = append(t.seqns, seqn)
	}
	return t, nil
}

func parseSEQN(s string) (int64, bool) {
	// NHANES exports sometimes render SEQN as a float ("73557.0").
	f, ok := parseNumeric(s)
	if !ok || f <= 0 || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	// Default to comma; filename heuristic only, to avoid reading the file twice.
	return ','
}
