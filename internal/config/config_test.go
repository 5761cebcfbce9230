package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutDir != "report" {
		t.Fatalf("out_dir = %q", c.OutDir)
	}
	if !c.Charts {
		t.Fatalf("charts should default on")
	}
	if c.AgeMin != 30 || c.AgeMax != 74 {
		t.Fatalf("age window = %d..%d", c.AgeMin, c.AgeMax)
	}
	if c.MinSample != 30 {
		t.Fatalf("min_sample = %d", c.MinSample)
	}
	if c.LogLevel != "info" || c.LogFormat != "console" {
		t.Fatalf("logging defaults = %s/%s", c.LogLevel, c.LogFormat)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "demographics_path: /data/demo.csv\nout_dir: results\ncharts: false\nage_min: 40\nage_max: 60\nmin_sample: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DemographicsPath != "/data/demo.csv" {
		t.Fatalf("demographics_path = %q", c.DemographicsPath)
	}
	if c.OutDir != "results" || c.Charts {
		t.Fatalf("out_dir/charts = %q/%v", c.OutDir, c.Charts)
	}
	if c.AgeMin != 40 || c.AgeMax != 60 || c.MinSample != 10 {
		t.Fatalf("cohort settings = %d..%d floor %d", c.AgeMin, c.AgeMax, c.MinSample)
	}
	// Untouched keys keep their defaults.
	if c.LogLevel != "info" {
		t.Fatalf("log_level = %q", c.LogLevel)
	}
}

func TestLoadRejectsInvertedAgeWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("age_min: 70\nage_max: 40\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("want error for age_min > age_max")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		DemographicsPath: "demo.csv",
		DietPath:         "diet.csv",
		ClinicalPath:     "clin.csv",
		OutDir:           "out",
		Charts:           true,
		AgeMin:           35,
		AgeMax:           65,
		MinSample:        20,
		Delimiter:        ";",
		LogLevel:         "debug",
		LogFormat:        "json",
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *out != *in {
		t.Fatalf("roundtrip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}
