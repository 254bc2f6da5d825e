package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Seed != "benchmark" {
		t.Errorf("expected seed benchmark, got %s", cfg.Seed)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.GridPoints%2 != 0 {
		t.Error("grid points should be even")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("benchmark", "quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.GridPoints != 64 {
		t.Errorf("expected 64 grid points, got %d", cfg.GridPoints)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("benchmark", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "quick"); cfg != nil {
		t.Error("expected nil for nonexistent seed")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("benchmark"); len(presets) == 0 {
		t.Error("expected presets for benchmark seed")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent seed")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Seed = "custom"
	cfg.Coeffs = [10]int{3, 4, 8, 6, 1, 5, 2, 1, 0, 0}
	cfg.Dt = 0.25

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Seed != "custom" || loaded.Dt != 0.25 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if loaded.Coeffs != cfg.Coeffs {
		t.Errorf("coefficients lost: %v", loaded.Coeffs)
	}
}
