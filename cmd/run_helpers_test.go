package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/dietrisk-cli/internal/config"
)

func TestResolveInputPathsPrecedence(t *testing.T) {
	cfg := &cfgpkg.Global{
		DemographicsPath: "cfg-demo.csv",
		DietPath:         "cfg-diet.csv",
		ClinicalPath:     "cfg-clin.csv",
	}

	paths, err := resolveInputPaths("flag-demo.csv", "", "", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths[0] != "flag-demo.csv" {
		t.Fatalf("expected flag path to win, got %q", paths[0])
	}
	if paths[1] != "cfg-diet.csv" || paths[2] != "cfg-clin.csv" {
		t.Fatalf("expected config fallbacks, got %v", paths)
	}

	if _, err := resolveInputPaths("", "", "", &cfgpkg.Global{}); err == nil {
		t.Fatal("expected error when no table paths are set anywhere")
	}
}

func TestDatasetOptionsDelimiters(t *testing.T) {
	cases := []struct {
		in   string
		want rune
	}{
		{"", 0},
		{",", ','},
		{";", ';'},
		{"tab", '\t'},
		{"\t", '\t'},
	}
	for _, tc := range cases {
		opt, err := datasetOptions(tc.in, &cfgpkg.Global{})
		if err != nil {
			t.Fatalf("delimiter %q: %v", tc.in, err)
		}
		if opt.Delimiter != tc.want {
			t.Fatalf("delimiter %q -> %q, want %q", tc.in, opt.Delimiter, tc.want)
		}
	}

	if _, err := datasetOptions("|", &cfgpkg.Global{}); err == nil {
		t.Fatal("expected error for unsupported delimiter")
	}

	// Config delimiter applies when the flag is empty.
	opt, err := datasetOptions("", &cfgpkg.Global{Delimiter: ";"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Delimiter != ';' {
		t.Fatalf("expected config delimiter, got %q", opt.Delimiter)
	}
}

func cohortFlagCmd() *cobra.Command {
	c := &cobra.Command{Use: "x"}
	c.Flags().Int("age-min", 0, "")
	c.Flags().Int("age-max", 0, "")
	c.Flags().Int("min-sample", 0, "")
	return c
}

func TestCohortOptionsPrecedence(t *testing.T) {
	cfg := &cfgpkg.Global{AgeMin: 40, AgeMax: 70, MinSample: 50}

	// Config over defaults.
	cmd := cohortFlagCmd()
	opt := cohortOptions(cmd, cfg, 0, 0, 0)
	if opt.AgeMin != 40 || opt.AgeMax != 70 || opt.MinSample != 50 {
		t.Fatalf("config values not applied: %+v", opt)
	}

	// Changed flags over config.
	cmd = cohortFlagCmd()
	if err := cmd.Flags().Set("age-min", "35"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("min-sample", "5"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	opt = cohortOptions(cmd, cfg, 35, 0, 5)
	if opt.AgeMin != 35 || opt.MinSample != 5 {
		t.Fatalf("flag overrides not applied: %+v", opt)
	}
	if opt.AgeMax != 70 {
		t.Fatalf("untouched flag should keep config value, got %d", opt.AgeMax)
	}

	// Defaults when nothing is set.
	cmd = cohortFlagCmd()
	opt = cohortOptions(cmd, &cfgpkg.Global{}, 0, 0, 0)
	if opt.AgeMin != 30 || opt.AgeMax != 74 || opt.MinSample != 30 {
		t.Fatalf("defaults not applied: %+v", opt)
	}
}
