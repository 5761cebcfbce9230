package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dietrisk-cli/internal/cohort"
	"github.com/KaramelBytes/dietrisk-cli/internal/dataset"
	"github.com/KaramelBytes/dietrisk-cli/internal/report"
)

var (
	sDemo      string
	sDiet      string
	sClinical  string
	sDelimiter string
	sOut       string
	sMinSample int
	sAgeMin    int
	sAgeMax    int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute per-subject scores and write the joined cohort CSV",
	Long: `score runs the loader, score calculator, and cohort join without the
statistical stage, writing the joined analysis table for external tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		paths, err := resolveInputPaths(sDemo, sDiet, sClinical, c)
		if err != nil {
			return err
		}
		opt, err := datasetOptions(sDelimiter, c)
		if err != nil {
			return err
		}
		copt := cohortOptions(cmd, c, sAgeMin, sAgeMax, sMinSample)

		bundle, err := dataset.Load(paths[0], paths[1], paths[2], opt)
		if err != nil {
			return err
		}
		at, err := cohort.Build(bundle, copt)
		if err != nil {
			return err
		}
		if err := report.WriteCohortCSV(at, sOut); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("✓ Wrote %s (%d subjects, %d excluded)\n", sOut, len(at.Subjects), at.Excluded.Total())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().StringVar(&sDemo, "demo", "", "demographics table path (overrides config)")
	scoreCmd.Flags().StringVar(&sDiet, "diet", "", "dietary totals table path (overrides config)")
	scoreCmd.Flags().StringVar(&sClinical, "clinical", "", "clinical table path (overrides config)")
	scoreCmd.Flags().StringVar(&sDelimiter, "delimiter", "", "table delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	scoreCmd.Flags().StringVarP(&sOut, "out", "o", "cohort.csv", "output CSV path")
	scoreCmd.Flags().IntVar(&sMinSample, "min-sample", 0, "minimum usable subjects (overrides config)")
	scoreCmd.Flags().IntVar(&sAgeMin, "age-min", 0, "lower age bound (overrides config)")
	scoreCmd.Flags().IntVar(&sAgeMax, "age-max", 0, "upper age bound (overrides config)")
}
