package storage

import (
	"math"
	"testing"

	"github.com/sgrier/spinodal/internal/experiment"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Times: []float64{0, 0.5, 1.0},
		Series: map[string][]float64{
			"mass":        {0.5, 0.5, 0.5},
			"free_energy": {120.0, 110.0, 105.0},
		},
		Metrics: map[string]float64{"mass": 0.5, "free_energy": 105.0},
		Snapshots: []experiment.Snapshot{
			{Step: 0, Time: 0, Label: "1aBenchmark_N4_DT5.000e-01_step000000",
				Data: [][]float64{{0.5, 0.51}, {0.52, 0.53}}},
		},
	}
}

func sampleConfig() experiment.Config {
	return experiment.Config{
		Seed: "benchmark", Stepper: "semi-implicit",
		GridPoints: 4, Dt: 0.5, Steps: 2,
	}
}

func TestSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(sampleConfig(), "1aBenchmark", sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Seed != "benchmark" || meta.GridPoints != 4 || meta.Dt != 0.5 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.SeedLabel != "1aBenchmark" {
		t.Errorf("expected seed label, got %q", meta.SeedLabel)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestSeriesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(sampleConfig(), "1aBenchmark", sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(times))
	}
	if math.Abs(series["free_energy"][2]-105.0) > 1e-9 {
		t.Errorf("series value lost: %g", series["free_energy"][2])
	}
}

func TestFieldRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(sampleConfig(), "1aBenchmark", sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	labels, err := st.ListSnapshots(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 1 {
		t.Fatalf("expected 1 snapshot, got %v", labels)
	}

	data, err := st.LoadField(runID, labels[0])
	if err != nil {
		t.Fatal(err)
	}
	if data[1][1] != 0.53 {
		t.Errorf("field value lost: %g", data[1][1])
	}
}

func TestList_EmptyStore(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
