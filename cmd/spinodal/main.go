package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sgrier/spinodal/internal/analysis"
	"github.com/sgrier/spinodal/internal/config"
	"github.com/sgrier/spinodal/internal/experiment"
	"github.com/sgrier/spinodal/internal/export"
	"github.com/sgrier/spinodal/internal/grid"
	"github.com/sgrier/spinodal/internal/solver"
	"github.com/sgrier/spinodal/internal/spectral"
	"github.com/sgrier/spinodal/internal/storage"
	"github.com/sgrier/spinodal/internal/viz"
)

var (
	dataDir       string
	gridPoints    int
	dt            float64
	steps         int
	snapshotEvery int
	stepper       string
	coeffs        []int
	configFile    string
	preset        string
	// live view
	stepsPerFrame int
	// render
	renderLabel  string
	renderFormat string
	renderOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spinodal",
		Short: "spectral Cahn-Hilliard benchmark lab (PFHub 1a)",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spinodal", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [seed]",
		Short: "run a simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSolverFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live [seed]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolverFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 2, "solver steps per display frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a stored snapshot to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&renderLabel, "label", "", "snapshot label (default: last snapshot)")
	renderCmd.Flags().StringVar(&renderFormat, "format", "svg", "output format: svg or pgm")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output file (default: <label>.<format>)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run metrics to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "structure factor of the final snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [seed]",
		Short: "benchmark solver throughput across resolutions",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSeed,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [seed]",
		Short: "compare steppers on the same seed and dt",
		Args:  cobra.ExactArgs(1),
		RunE:  compareSteppers,
	}
	addSolverFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [seed]",
		Short: "list available presets for a seed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for seed: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, renderCmd, exportCSVCmd, analyzeCmd, benchCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridPoints, "points", config.DefaultGridPoints, "grid points per side")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&snapshotEvery, "snapshot-every", config.DefaultSnapshotEvery, "snapshot interval in steps (0: final only)")
	cmd.Flags().StringVar(&stepper, "stepper", config.DefaultStepper, "time stepping scheme")
	cmd.Flags().IntSliceVar(&coeffs, "coeffs", nil, "ten coefficients for the custom seed")
}

func coeffArray() ([10]int, error) {
	var out [10]int
	if coeffs == nil {
		return out, nil
	}
	if len(coeffs) != 10 {
		return out, fmt.Errorf("custom seed needs exactly 10 coefficients, got %d", len(coeffs))
	}
	copy(out[:], coeffs)
	return out, nil
}

func buildConfig(cmd *cobra.Command, seed string) (experiment.Config, error) {
	cfg := experiment.Config{
		Seed:          seed,
		Stepper:       stepper,
		GridPoints:    gridPoints,
		Dt:            dt,
		Steps:         steps,
		SnapshotEvery: snapshotEvery,
	}

	if preset != "" {
		p := config.GetPreset(seed, preset)
		if p == nil {
			return cfg, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(seed))
		}
		cfg.Stepper = p.Stepper
		cfg.GridPoints = p.GridPoints
		cfg.Dt = p.Dt
		cfg.Steps = p.Steps
		cfg.SnapshotEvery = p.SnapshotEvery
		cfg.Coeffs = p.Coeffs
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("points") {
			cfg.GridPoints = fileCfg.GridPoints
		}
		if !cmd.Flags().Changed("dt") {
			cfg.Dt = fileCfg.Dt
		}
		if !cmd.Flags().Changed("steps") {
			cfg.Steps = fileCfg.Steps
		}
		if !cmd.Flags().Changed("snapshot-every") {
			cfg.SnapshotEvery = fileCfg.SnapshotEvery
		}
		if !cmd.Flags().Changed("stepper") {
			cfg.Stepper = fileCfg.Stepper
		}
		if !cmd.Flags().Changed("coeffs") {
			cfg.Coeffs = fileCfg.Coeffs
		}
	}

	if cmd.Flags().Changed("coeffs") {
		arr, err := coeffArray()
		if err != nil {
			return cfg, err
		}
		cfg.Coeffs = arr
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), spectral.NewDSP()); err != nil {
		return err
	}

	fmt.Printf("running %s (N=%d, dt=%g, %d steps)...\n", args[0], cfg.GridPoints, cfg.Dt, cfg.Steps)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, exp.Solver().SeedName(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("snapshots: %d\n", len(result.Snapshots))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	arr, err := coeffArray()
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	seed, err := reg.GetSeed(args[0], arr)
	if err != nil {
		return err
	}
	step, err := reg.GetStepper(stepper)
	if err != nil {
		return err
	}

	g, err := grid.New(gridPoints, solver.DefaultParams().Size)
	if err != nil {
		return err
	}
	s, err := solver.New(g, spectral.NewDSP(), seed, step, dt)
	if err != nil {
		return err
	}
	s.Initialize()

	p := tea.NewProgram(viz.NewModel(s, stepsPerFrame))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tTIME\tN\tDT\tSTEPS\tSTEPPER")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4g\t%d\t%s\n",
			run.ID,
			run.SeedLabel,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridPoints,
			run.Dt,
			run.Steps,
			run.Stepper,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %s\n", meta.SeedLabel)
	fmt.Printf("samples: %d\n\n", len(times))

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func lastSnapshot(st *storage.Store, runID string) (string, error) {
	labels, err := st.ListSnapshots(runID)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("run %s has no snapshots", runID)
	}
	return labels[len(labels)-1], nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	label := renderLabel
	if label == "" {
		var err error
		if label, err = lastSnapshot(st, args[0]); err != nil {
			return err
		}
	}

	data, err := st.LoadField(args[0], label)
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" {
		out = label + "." + renderFormat
	}

	switch renderFormat {
	case "svg":
		if err := os.WriteFile(out, []byte(export.HeatmapSVG(data, 4)), 0644); err != nil {
			return err
		}
	case "pgm":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WritePGM(f, data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (want svg or pgm)", renderFormat)
	}

	fmt.Printf("wrote %s\n", filepath.Clean(out))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i, t := range times {
		row := []string{strconv.FormatFloat(t, 'f', 6, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(series[name][i], 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	label, err := lastSnapshot(st, args[0])
	if err != nil {
		return err
	}
	data, err := st.LoadField(args[0], label)
	if err != nil {
		return err
	}

	s := analysis.StructureFactor(data, spectral.NewDSP())

	fmt.Printf("structure factor: %s\n", label)
	fmt.Printf("seed: %s\n\n", meta.SeedLabel)

	graph := asciigraph.Plot(s,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("S(k) vs wavenumber"),
	)
	fmt.Println(graph)
	fmt.Println()

	wavelength := analysis.DominantWavelength(s, solver.DefaultParams().Size)
	if wavelength > 0 {
		fmt.Printf("dominant wavelength: %.2f\n", wavelength)
	}
	return nil
}

func benchSeed(cmd *cobra.Command, args []string) error {
	sizes := []int{32, 64, 96}
	dts := []float64{0.1, 0.5}
	benchSteps := 50

	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	reg := experiment.NewRegistry()
	tr := spectral.NewDSP()

	for _, n := range sizes {
		for _, benchDt := range dts {
			cfg := experiment.Config{
				Seed:       args[0],
				Stepper:    "semi-implicit",
				GridPoints: n,
				Dt:         benchDt,
				Steps:      benchSteps,
			}
			exp := experiment.New(cfg)
			if err := exp.Setup(reg, tr); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.4g\t%d\t%v\t%.0f\n",
				n, benchDt, result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	tr := spectral.NewDSP()

	fmt.Printf("comparing steppers for %s (N=%d, dt=%g, %d steps)\n\n",
		args[0], cfg.GridPoints, cfg.Dt, cfg.Steps)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tFREE_ENERGY\tMASS_DRIFT\tTIME")

	for _, name := range reg.ListSteppers() {
		runCfg := cfg
		runCfg.Stepper = name
		runCfg.SnapshotEvery = 0

		exp := experiment.New(runCfg)
		if err := exp.Setup(reg, tr); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.6g\t%.2e\t%v\n",
			name, result.Metrics["free_energy"], result.Metrics["mass_drift"], elapsed)
	}
	return w.Flush()
}
