package config

var Presets = map[string]map[string]*Config{
	"benchmark": {
		"quick": {
			Seed: "benchmark", Stepper: "semi-implicit",
			GridPoints: 64, Dt: 0.1, Steps: 500, SnapshotEvery: 100,
		},
		"standard": {
			Seed: "benchmark", Stepper: "semi-implicit",
			GridPoints: 96, Dt: 0.5, Steps: 5000, SnapshotEvery: 1000,
		},
		"fine": {
			Seed: "benchmark", Stepper: "semi-implicit",
			GridPoints: 192, Dt: 0.5, Steps: 20000, SnapshotEvery: 2000,
		},
	},
	"chimad2023": {
		"quick": {
			Seed: "chimad2023", Stepper: "semi-implicit",
			GridPoints: 64, Dt: 0.1, Steps: 500, SnapshotEvery: 100,
		},
		"standard": {
			Seed: "chimad2023", Stepper: "semi-implicit",
			GridPoints: 96, Dt: 0.5, Steps: 5000, SnapshotEvery: 1000,
		},
	},
	"custom": {
		"smoke": {
			Seed: "custom", Stepper: "semi-implicit",
			GridPoints: 64, Dt: 0.1, Steps: 200, SnapshotEvery: 50,
			Coeffs: [10]int{1, 2, 3, 4, 5, 6, 7, 8, 0, 0},
		},
	},
}

func GetPreset(seed, preset string) *Config {
	seedPresets, ok := Presets[seed]
	if !ok {
		return nil
	}
	cfg, ok := seedPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(seed string) []string {
	seedPresets, ok := Presets[seed]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(seedPresets))
	for name := range seedPresets {
		names = append(names, name)
	}
	return names
}
