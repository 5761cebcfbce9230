package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dietrisk-cli/internal/config"
	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
	"github.com/KaramelBytes/dietrisk-cli/internal/dataset"
	"github.com/KaramelBytes/dietrisk-cli/internal/report"
	"github.com/KaramelBytes/dietrisk-cli/internal/stats"
	"github.com/KaramelBytes/dietrisk-cli/internal/utils"
)

var (
	runDemo         string
	runDiet         string
	runClinical     string
	runOut          string
	runDelimiter    string
	runMinSample    int
	runAgeMin       int
	runAgeMax       int
	runCharts       bool
	runExportCohort bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: load, score, join, analyze, report",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		paths, err := resolveInputPaths(runDemo, runDiet, runClinical, c)
		if err != nil {
			return err
		}
		opt, err := datasetOptions(runDelimiter, c)
		if err != nil {
			return err
		}
		copt := cohortOptions(cmd, c, runAgeMin, runAgeMax, runMinSample)

		runID := uuid.NewString()
		rlog := log.With().Str("run_id", runID).Logger()
		rlog.Info().
			Str("demographics", paths[0]).
			Str("diet", paths[1]).
			Str("clinical", paths[2]).
			Msg("loading source tables")

		bundle, err := dataset.Load(paths[0], paths[1], paths[2], opt)
		if err != nil {
			return err
		}
		rlog.Debug().
			Int("demographics_rows", bundle.Demographics.Len()).
			Int("diet_rows", bundle.Diet.Len()).
			Int("clinical_rows", bundle.Clinical.Len()).
			Msg("tables loaded")

		at, err := cohort.Build(bundle, copt)
		if err != nil {
			var insufficient *cohort.InsufficientDataError
			if errors.As(err, &insufficient) {
				rlog.Error().Int("usable", insufficient.Usable).Int("min_sample", insufficient.MinSample).
					Msg("aborting: cohort below minimum sample size")
			}
			return err
		}
		rlog.Info().Int("subjects", len(at.Subjects)).Int("excluded", at.Excluded.Total()).
			Msg("cohort built")

		analysis, err := stats.Analyze(at)
		if err != nil {
			return err
		}

		outDir := runOut
		if outDir == "" {
			outDir = c.OutDir
		}
		if outDir == "" {
			outDir = "report"
		}
		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		summary := report.Text(analysis)
		summaryPath := filepath.Join(outDir, "summary.txt")
		if err := utils.SafeWriteFile(summaryPath, []byte(summary)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		written := []string{summaryPath}

		sexCSV := filepath.Join(outDir, "group_summary_by_sex.csv")
		if err := report.WriteGroupSummaryCSV(analysis.Sexes, sexCSV); err != nil {
			return err
		}
		ageCSV := filepath.Join(outDir, "group_summary_by_age.csv")
		if err := report.WriteGroupSummaryCSV(analysis.AgeBands, ageCSV); err != nil {
			return err
		}
		written = append(written, sexCSV, ageCSV)

		charts := c.Charts
		if cmd.Flags().Changed("charts") {
			charts = runCharts
		}
		if charts {
			scatterPath := filepath.Join(outDir, "hei_vs_risk.png")
			if err := report.ScatterChart(analysis, scatterPath); err != nil {
				return err
			}
			sexScatterPath := filepath.Join(outDir, "hei_vs_risk_by_sex.png")
			if err := report.SexScatterChart(analysis, sexScatterPath); err != nil {
				return err
			}
			ageScatterPath := filepath.Join(outDir, "hei_vs_risk_by_age.png")
			if err := report.AgeBandScatterChart(analysis, ageScatterPath); err != nil {
				return err
			}
			barPath := filepath.Join(outDir, "risk_by_quartile.png")
			if err := report.QuartileBarChart(analysis, barPath); err != nil {
				return err
			}
			written = append(written, scatterPath, sexScatterPath, ageScatterPath, barPath)
		}
		if runExportCohort {
			cohortPath := filepath.Join(outDir, "cohort.csv")
			if err := report.WriteCohortCSV(at, cohortPath); err != nil {
				return err
			}
			written = append(written, cohortPath)
		}

		if !quiet {
			fmt.Print(summary)
			for _, p := range written {
				fmt.Printf("✓ Wrote %s\n", p)
			}
		}
		rlog.Info().Strs("files", written).Msg("run complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDemo, "demo", "", "demographics table path (overrides config)")
	runCmd.Flags().StringVar(&runDiet, "diet", "", "dietary totals table path (overrides config)")
	runCmd.Flags().StringVar(&runClinical, "clinical", "", "clinical table path (overrides config)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "output directory (default from config)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "table delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	runCmd.Flags().IntVar(&runMinSample, "min-sample", 0, "minimum usable subjects (overrides config)")
	runCmd.Flags().IntVar(&runAgeMin, "age-min", 0, "lower age bound (overrides config)")
	runCmd.Flags().IntVar(&runAgeMax, "age-max", 0, "upper age bound (overrides config)")
	runCmd.Flags().BoolVar(&runCharts, "charts", true, "render scatter and bar charts")
	runCmd.Flags().BoolVar(&runExportCohort, "export-cohort", false, "also write the joined cohort as CSV")
}

// resolveInputPaths applies flag-over-config precedence for the three tables.
func resolveInputPaths(demo, diet, clinical string, c *cfgpkg.Global) ([3]string, error) {
	var paths [3]string
	if demo == "" {
		demo = c.DemographicsPath
	}
	if diet == "" {
		diet = c.DietPath
	}
	if clinical == "" {
		clinical = c.ClinicalPath
	}
	if demo == "" || diet == "" || clinical == "" {
		return paths, fmt.Errorf("all three input tables are required: --demo, --diet, --clinical (or config)")
	}
	paths[0], paths[1], paths[2] = demo, diet, clinical
	return paths, nil
}

func datasetOptions(delimiter string, c *cfgpkg.Global) (dataset.Options, error) {
	var opt dataset.Options
	if delimiter == "" {
		delimiter = c.Delimiter
	}
	switch strings.ToLower(strings.TrimSpace(delimiter)) {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delimiter)
	}
	return opt, nil
}

// cohortOptions layers config values and then flag overrides onto the
// defaults. The flag values come in as arguments so score shares this.
func cohortOptions(cmd *cobra.Command, c *cfgpkg.Global, ageMin, ageMax, minSample int) cohort.Options {
	opt := cohort.DefaultOptions()
	if c.AgeMin > 0 {
		opt.AgeMin = c.AgeMin
	}
	if c.AgeMax > 0 {
		opt.AgeMax = c.AgeMax
	}
	if c.MinSample > 0 {
		opt.MinSample = c.MinSample
	}
	if cmd.Flags().Changed("age-min") && ageMin > 0 {
		opt.AgeMin = ageMin
	}
	if cmd.Flags().Changed("age-max") && ageMax > 0 {
		opt.AgeMax = ageMax
	}
	if cmd.Flags().Changed("min-sample") && minSample > 0 {
		opt.MinSample = minSample
	}
	return opt
}
