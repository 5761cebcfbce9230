package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dietrisk-cli/internal/dataset"
)

var (
	vDemo      string
	vDiet      string
	vClinical  string
	vDelimiter string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the three source tables for required columns and unique SEQNs",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		paths, err := resolveInputPaths(vDemo, vDiet, vClinical, c)
		if err != nil {
			return err
		}
		opt, err := datasetOptions(vDelimiter, c)
		if err != nil {
			return err
		}

		bundle, err := dataset.Load(paths[0], paths[1], paths[2], opt)
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s: %d subjects, %d columns\n", bundle.Demographics.Name, bundle.Demographics.Len(), len(bundle.Demographics.Columns))
		fmt.Printf("✓ %s: %d subjects, %d columns\n", bundle.Diet.Name, bundle.Diet.Len(), len(bundle.Diet.Columns))
		fmt.Printf("✓ %s: %d subjects, %d columns\n", bundle.Clinical.Name, bundle.Clinical.Len(), len(bundle.Clinical.Columns))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&vDemo, "demo", "", "demographics table path (overrides config)")
	validateCmd.Flags().StringVar(&vDiet, "diet", "", "dietary totals table path (overrides config)")
	validateCmd.Flags().StringVar(&vClinical, "clinical", "", "clinical table path (overrides config)")
	validateCmd.Flags().StringVar(&vDelimiter, "delimiter", "", "table delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
}
