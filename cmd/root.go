package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dietrisk-cli/internal/config"
	"github.com/KaramelBytes/dietrisk-cli/internal/logging"
)

var (
	// Global flags (wired to config at load time)
	cfgFile   string
	debug     bool
	quiet     bool
	logFormat string

	// Loaded configuration and process logger
	cfg *cfgpkg.Global
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dietrisk",
	Short: "dietrisk: diet quality vs 10-year CVD risk from NHANES-style tables",
	Long: `dietrisk is a batch CLI that derives HEI-2015 diet-quality scores and
Framingham 10-year cardiovascular risk from three NHANES-style survey tables,
joins them per subject, and emits a statistical report with charts.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dietrisk/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console|json (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	format := cfg.LogFormat
	if logFormat != "" {
		format = logFormat
	}
	log = logging.New(logging.Options{Level: level, Format: format, Quiet: quiet})
}

// ensureConfig guards commands that run before/without a successful load.
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = c
	return cfg, nil
}
