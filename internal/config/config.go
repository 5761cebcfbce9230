package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input tables
	DemographicsPath string `mapstructure:"demographics_path" yaml:"demographics_path"`
	DietPath         string `mapstructure:"diet_path" yaml:"diet_path"`
	ClinicalPath     string `mapstructure:"clinical_path" yaml:"clinical_path"`

	// Output
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`
	Charts bool   `mapstructure:"charts" yaml:"charts"`

	// Cohort window and floor
	AgeMin    int `mapstructure:"age_min" yaml:"age_min"`
	AgeMax    int `mapstructure:"age_max" yaml:"age_max"`
	MinSample int `mapstructure:"min_sample" yaml:"min_sample"`

	// CSV parsing
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dietrisk/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dietrisk")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DIETRISK")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("out_dir", "report")
	v.SetDefault("charts", true)
	v.SetDefault("age_min", 30)
	v.SetDefault("age_max", 74)
	v.SetDefault("min_sample", 30)
	v.SetDefault("delimiter", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dietrisk")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.AgeMin > c.AgeMax {
		return nil, fmt.Errorf("age_min %d exceeds age_max %d", c.AgeMin, c.AgeMax)
	}
	return &c, nil
}
