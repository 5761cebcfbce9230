package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dietrisk-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set dietrisk configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		fmt.Printf("demographics_path: %s\n", c.DemographicsPath)
		fmt.Printf("diet_path: %s\n", c.DietPath)
		fmt.Printf("clinical_path: %s\n", c.ClinicalPath)
		fmt.Printf("out_dir: %s\n", c.OutDir)
		fmt.Printf("charts: %t\n", c.Charts)
		fmt.Printf("age_min: %d\n", c.AgeMin)
		fmt.Printf("age_max: %d\n", c.AgeMax)
		fmt.Printf("min_sample: %d\n", c.MinSample)
		if c.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", c.Delimiter)
		}
		fmt.Printf("log_level: %s\n", c.LogLevel)
		fmt.Printf("log_format: %s\n", c.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		switch key {
		case "demographics_path":
			c.DemographicsPath = val
		case "diet_path":
			c.DietPath = val
		case "clinical_path":
			c.ClinicalPath = val
		case "out_dir":
			c.OutDir = val
		case "charts":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid charts: %s (use true or false)", val)
			}
			c.Charts = b
		case "age_min", "age_max", "min_sample":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid %s: %s (must be a positive integer)", key, val)
			}
			switch key {
			case "age_min":
				c.AgeMin = n
			case "age_max":
				c.AgeMax = n
			case "min_sample":
				c.MinSample = n
			}
		case "delimiter":
			switch val {
			case ",", ";", "tab":
				c.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %s (use ','|';'|'tab')", val)
			}
		case "log_level":
			c.LogLevel = val
		case "log_format":
			switch val {
			case "console", "json":
				c.LogFormat = val
			default:
				return fmt.Errorf("invalid log_format: %s (use console or json)", val)
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
