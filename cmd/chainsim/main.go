package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/san-kum/chainsim/internal/config"
	"github.com/san-kum/chainsim/internal/motion"
	"github.com/san-kum/chainsim/internal/scenario"
	"github.com/san-kum/chainsim/internal/share"
	"github.com/san-kum/chainsim/internal/storage"
	"github.com/san-kum/chainsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	count      int
	logFile    string
	outFile    string
	width      float64
	height     float64
	qrSize     int
	plotNode   int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	benchFrame int
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "chainsim",
		Short: "nested motion chain lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" && preset == "" {
				if err := storage.New(dataDir).Init(); err != nil {
					return err
				}
				return viz.RunPicker(os.Getenv, dataDir)
			}
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("CHAINSIM_DATA", ".chainsim"), "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&count, "count", 0, "override the number of nodes")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", os.Getenv("CHAINSIM_LOG"), "debug log file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "host a chain in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "replay a scenario headless and store the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotNode, "node", -1, "node index to plot (-1 plots head/tail lag)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run positions to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the path of one node as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&plotNode, "node", -1, "node index (-1 is the innermost)")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNODES\tMODE\tHIT\tTRAIL")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\n", name, p.Chain.Count, p.Chain.Mode, p.Chain.HitPolicy, p.Trail.Capacity)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("config written to %s\n", args[0])
			return nil
		},
	}

	shareCmd := &cobra.Command{
		Use:       "share [snapshot|copy|qr|png|svg]",
		Short:     "share the configuration or a still of the resting chain",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"snapshot", "copy", "qr", "png", "svg"},
		RunE:      shareConfig,
	}
	shareCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path")
	shareCmd.Flags().Float64Var(&width, "width", 800, "host width in pixels")
	shareCmd.Flags().Float64Var(&height, "height", 600, "host height in pixels")
	shareCmd.Flags().IntVar(&qrSize, "size", 256, "qr code size in pixels")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "replay a scenario across a range of one motion parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "speed_base", fmt.Sprintf("parameter %v", scenario.SweepParams()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame updates for several chain lengths",
		RunE:  benchChain,
	}
	benchCmd.Flags().IntVar(&benchFrame, "frames", 6000, "frames per length")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		presetsCmd, initCmd, shareCmd, sweepCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupLogging sends the standard logger to logFile, or discards it so log
// lines never tear the alt screen.
func setupLogging() error {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	_, err := tea.LogToFile(logFile, "chainsim")
	return err
}

// loadConfig resolves the configuration: defaults, then the preset, then the
// config file, then --count.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.LookupPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if count > 0 {
		cfg.Chain.Count = count
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).Init(); err != nil {
		return err
	}
	caps := cfg.Capabilities(os.Getenv)
	log.Printf("live: %d nodes, mode %s, caps %+v", cfg.Chain.Count, cfg.Chain.Mode, caps)
	return viz.Run(cfg, caps, dataDir)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("preset") {
		sc.Preset = preset
	}
	if count > 0 {
		sc.Count = count
	}

	var base *config.Config
	if configFile != "" {
		if base, err = config.Load(configFile); err != nil {
			return err
		}
		if !cmd.Flags().Changed("preset") {
			sc.Preset = ""
		}
	}
	cfg, err := scenario.Resolve(sc, base)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := scenario.Run(cmd.Context(), sc, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Name:   sc.Name,
		Preset: sc.Preset,
		Count:  cfg.Chain.Count,
		Mode:   cfg.Chain.Mode.String(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("frames: %d in %v\n", len(result.Frames), elapsed)
	fmt.Printf("container: %.0fx%.0f\n", result.Container.Width, result.Container.Height)
	fmt.Printf("permission: %s\n", result.Permission)
	if result.Settle >= 0 {
		fmt.Printf("settled: frame %d\n", result.Settle)
	} else {
		fmt.Println("settled: never")
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"convergence", "max_lag", "clamp_violations"} {
		if v, ok := m[name]; ok {
			fmt.Fprintf(w, "  %s\t%.4f\n", name, v)
		}
	}
	w.Flush()
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tNODES\tMODE\tSETTLE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Count,
			run.Mode,
			run.Settle,
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

	frames, targets, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(frames))

	if plotNode < 0 {
		lag := make([]float64, len(frames))
		for i, f := range frames {
			if len(f) > 1 {
				lag[i] = f[0].Dist(f[len(f)-1])
			}
		}
		fmt.Println(asciigraph.Plot(lag, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("head/tail lag (px)")))
		return nil
	}

	if plotNode >= len(frames[0]) {
		return fmt.Errorf("node %d out of range (run has %d nodes)", plotNode, len(frames[0]))
	}
	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	tx := make([]float64, len(frames))
	for i, f := range frames {
		xs[i], ys[i] = f[plotNode].X, f[plotNode].Y
		tx[i] = targets[i].X
	}
	fmt.Println(asciigraph.PlotMany([][]float64{tx, xs}, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green),
		asciigraph.Caption(fmt.Sprintf("node %d x (green) vs target x (red)", plotNode))))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("node %d y", plotNode))))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, targets, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"frame", "node", "x", "y", "target_x", "target_y"}
	if err := w.Write(header); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for i, f := range frames {
		for n, p := range f {
			row := []string{strconv.Itoa(i), strconv.Itoa(n), ff(p.X), ff(p.Y), ff(targets[i].X), ff(targets[i].Y)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

type exportDoc struct {
	*storage.RunMetadata
	Targets   []motion.Vec2   `json:"targets"`
	Positions [][]motion.Vec2 `json:"positions"`
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, targets, err := st.LoadPositions(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(exportDoc{RunMetadata: meta, Targets: targets, Positions: frames})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	frames, _, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	node := plotNode
	if node < 0 {
		node = len(frames[0]) - 1
	}
	if node >= len(frames[0]) {
		return fmt.Errorf("node %d out of range (run has %d nodes)", node, len(frames[0]))
	}

	path := make([]motion.Vec2, len(frames))
	for i, f := range frames {
		path[i] = f[node]
	}
	out := outFile
	if out == "" {
		out = runID + ".svg"
	}
	return report(share.WriteSVG(out, share.PathToSVG(path, 640, 480, "#ff6b6b")))
}

func report(ack share.Ack) error {
	if !ack.OK {
		return fmt.Errorf("%s", ack.Message)
	}
	fmt.Println(ack.Message)
	return nil
}

// still runs the resolved configuration for a single frame with no input so
// the chain sits at rest inside a width x height host.
func still(ctx context.Context, cfg *config.Config) (*scenario.Result, error) {
	sc := &scenario.Scenario{
		Name:   "still",
		Frames: 1,
		Parent: scenario.Parent{Width: width, Height: height},
	}
	return scenario.Run(ctx, sc, cfg)
}

func shareConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := func(def string) string {
		if outFile != "" {
			return outFile
		}
		return filepath.Join(dataDir, def)
	}
	ensureDir := func(path string) error {
		return os.MkdirAll(filepath.Dir(path), 0755)
	}

	switch args[0] {
	case "snapshot":
		text, err := share.Snapshot(cfg)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	case "copy":
		return report(share.CopyParams(os.Stdout, cfg))
	case "qr":
		path := out("chainsim_qr.png")
		if err := ensureDir(path); err != nil {
			return err
		}
		return report(share.QR(path, cfg, qrSize))
	case "png", "svg":
		res, err := still(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		path := out("chainsim." + args[0])
		if err := ensureDir(path); err != nil {
			return err
		}
		if args[0] == "png" {
			return report(share.WritePNG(path, res.Transforms, res.Container))
		}
		return report(share.WriteSVG(path, share.TransformsToSVG(res.Transforms, res.Container)))
	}
	return fmt.Errorf("unknown share target %q", args[0])
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	if count > 0 {
		sc.Count = count
	}
	var base *config.Config
	if preset != "" || configFile != "" {
		if base, err = loadConfig(); err != nil {
			return err
		}
		sc.Preset = ""
	}

	results, err := scenario.RunSweep(cmd.Context(), sc, base, scenario.Sweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSETTLE\tCONVERGENCE\tMAX_LAG\tCLAMP\n", sweepParam)
	settle := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%.4f\t%.2f\t%.0f\n",
			r.Value, r.Settle, r.Metrics["convergence"], r.Metrics["max_lag"], r.Metrics["clamp_violations"])
		settle = append(settle, float64(r.Settle))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(settle) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(settle, asciigraph.Height(8), asciigraph.Width(60),
			asciigraph.Caption("settle frame per step (-1 never)")))
	}
	return nil
}

func benchChain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %d frames\n\n", benchFrame)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODES\tFRAMES\tTIME\tFRAMES/SEC")

	for _, n := range []int{1, 12, 64, config.MaxCount} {
		sc := &scenario.Scenario{
			Name:   "bench",
			Count:  n,
			Frames: benchFrame,
			Events: []scenario.Event{
				{Frame: 0, Kind: "down", X: 400, Y: 300},
				{Frame: 1, Kind: "move", X: 700, Y: 500},
			},
		}
		c, err := scenario.Resolve(sc, cfg)
		if err != nil {
			return err
		}
		start := time.Now()
		res, err := scenario.Run(cmd.Context(), sc, c)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, len(res.Frames), elapsed, float64(len(res.Frames))/elapsed.Seconds())
	}

	return w.Flush()
}
