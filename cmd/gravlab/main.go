package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravlab/internal/config"
	"github.com/san-kum/gravlab/internal/engine"
	"github.com/san-kum/gravlab/internal/metrics"
	"github.com/san-kum/gravlab/internal/preset"
	"github.com/san-kum/gravlab/internal/storage"
	"github.com/san-kum/gravlab/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	configFile string
	stride     int
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravlab",
		Short: "gravitational n-body simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().IntVar(&stride, "stride", 1, "record every Nth frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range preset.Names() {
				fmt.Println(name)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame timestep")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildScenario resolves the simulation and its label from the config
// file or the preset argument, in that order.
func buildScenario(cmd *cobra.Command, args []string) (*engine.Simulation, string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if f := cmd.Flags().Lookup("time"); f != nil && !f.Changed {
			duration = cfg.Duration
		}
		if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
			seed = cfg.Seed
		}
		cfg.Seed = seed
		sim, err := cfg.Build()
		if err != nil {
			return nil, "", err
		}
		label := cfg.Preset
		if label == "" {
			label = cfg.Mode
		}
		return sim, label, nil
	}

	name := config.DefaultPreset
	if len(args) > 0 {
		name = args[0]
	}
	builder, err := preset.Get(name)
	if err != nil {
		return nil, "", err
	}
	return builder(seed), name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	sim, label, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	observers := []metrics.Metric{
		metrics.NewEnergyDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewPopulation(),
	}

	if stride < 1 {
		stride = 1
	}

	frames := int(duration / dt)
	series := make([]storage.Sample, 0, frames/stride+1)

	fmt.Printf("running %s (%s mode, %d bodies)...\n", label, sim.Mode(), sim.Len())
	start := time.Now()

	t := 0.0
	for i := 0; i < frames; i++ {
		for _, m := range observers {
			m.Observe(sim, t)
		}
		if i%stride == 0 {
			series = append(series, storage.Sample{
				Time:       t,
				Energy:     sim.TotalEnergy(),
				Extent:     sim.SystemExtent(),
				Momentum:   sim.Momentum().Norm(),
				Population: sim.Len(),
			})
		}
		if err := sim.Step(dt); err != nil {
			return err
		}
		t += dt
	}
	elapsed := time.Since(start)

	results := make(map[string]float64, len(observers))
	for _, m := range observers {
		m.Observe(sim, t)
		results[m.Name()] = m.Value()
	}

	runID, err := st.Save(storage.RunMetadata{
		Mode:     sim.Mode().String(),
		Preset:   label,
		Started:  start,
		Seed:     seed,
		Dt:       dt,
		Duration: duration,
		Metrics:  results,
	}, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", frames)
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
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

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tPRESET\tSTARTED\tDURATION\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\n",
			run.ID,
			run.Mode,
			run.Preset,
			run.Started.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", len(series))

	plots := []struct {
		caption string
		pick    func(storage.Sample) float64
	}{
		{"total energy", func(s storage.Sample) float64 { return s.Energy }},
		{"system extent", func(s storage.Sample) float64 { return s.Extent }},
		{"|momentum|", func(s storage.Sample) float64 { return s.Momentum }},
		{"population", func(s storage.Sample) float64 { return float64(s.Population) }},
	}

	for _, p := range plots {
		data := make([]float64, len(series))
		for i, sample := range series {
			data[i] = p.pick(sample)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	sim, label, err := buildScenario(cmd, args)
	if err != nil {
		return err
	}
	return tui.Run(sim, label, dt, frameRate)
}
