package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sgrier/spinodal/internal/experiment"
)

// Store persists runs under a base directory: one directory per run with
// metadata.json, a metrics.csv time series, and a snapshots/ directory
// holding one CSV matrix per saved field.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Seed       string             `json:"seed"`
	SeedLabel  string             `json:"seed_label"`
	Stepper    string             `json:"stepper"`
	GridPoints int                `json:"grid_points"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Timestamp  time.Time          `json:"timestamp"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one completed run and returns its id.
func (s *Store) Save(cfg experiment.Config, seedLabel string, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Seed, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(filepath.Join(runDir, "snapshots"), 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Seed:       cfg.Seed,
		SeedLabel:  seedLabel,
		Stepper:    cfg.Stepper,
		GridPoints: cfg.GridPoints,
		Dt:         cfg.Dt,
		Steps:      cfg.Steps,
		Timestamp:  time.Now(),
		Metrics:    result.Metrics,
	}

	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeSeries(runDir, result); err != nil {
		return "", err
	}
	for _, snap := range result.Snapshots {
		if err := s.SaveField(runID, snap.Label, snap.Data); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeSeries(runDir string, result *experiment.Result) error {
	f, err := os.Create(filepath.Join(runDir, "metrics.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	header := append([]string{"time"}, names...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(result.Series[name][i], 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// SaveField persists one real matrix under the run's snapshots directory,
// named by the label convention.
func (s *Store) SaveField(runID, label string, data [][]float64) error {
	f, err := os.Create(filepath.Join(s.baseDir, runID, "snapshots", label+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for _, row := range data {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', 17, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads the metric time series back: the time column plus one
// named series per metric.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "metrics.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, map[string][]float64{}, nil
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	series := make(map[string][]float64, len(header)-1)
	for _, name := range header[1:] {
		series[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for col, name := range header[1:] {
			v, err := strconv.ParseFloat(record[col+1], 64)
			if err != nil {
				v = 0
			}
			series[name] = append(series[name], v)
		}
	}
	return times, series, nil
}

// ListSnapshots returns the snapshot labels of a run in lexical order,
// which is also step order given the zero-padded step suffix.
func (s *Store) ListSnapshots(runID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, runID, "snapshots"))
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".csv"); ok {
			labels = append(labels, name)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// LoadField reads one snapshot matrix back.
func (s *Store) LoadField(runID, label string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "snapshots", label+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	data := make([][]float64, len(records))
	for i, record := range records {
		data[i] = make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("snapshot %s row %d: %w", label, i, err)
			}
			data[i][j] = v
		}
	}
	return data, nil
}
