package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/loewner/internal/analysis"
	"github.com/san-kum/loewner/internal/config"
	"github.com/san-kum/loewner/internal/experiment"
	"github.com/san-kum/loewner/internal/export"
	"github.com/san-kum/loewner/internal/loewner"
	"github.com/san-kum/loewner/internal/metrics"
	"github.com/san-kum/loewner/internal/storage"
	"github.com/san-kum/loewner/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	overrides  []string
	noSave     bool
	traceFile  string
	outFile    string
	numRuns    int
	workers    int
	maxLag     int
)

// flags that map one-to-one onto config keys
var configFlags = []string{
	"source", "points", "tf", "seed", "strict", "width",
	"kappa", "hurst", "b", "coeff", "exponent",
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "loewner",
		Short:        "loewner evolution traces and driving functions",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".loewner", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to the console")

	runCmd := &cobra.Command{
		Use:   "run [domain]",
		Short: "compute a trace from a generated driving function",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	invertCmd := &cobra.Command{
		Use:   "invert [run_id]",
		Short: "recover the driving function of a stored or CSV trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  invertTrace,
	}
	invertCmd.Flags().StringVar(&traceFile, "file", "", "trace CSV (time,drive,re,im) instead of a run id")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot driving function and trace of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "driving function statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&maxLag, "max-lag", 16, "largest lag for the hurst estimate")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's trace as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [domain]",
		Short: "run independent seeds and summarize their metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 16, "number of runs")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (default GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets [domain]",
		Short: "list available presets for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for domain: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [domain]",
		Short: "time traces over increasing sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchDomain,
	}
	addConfigFlags(benchCmd)

	viewCmd := &cobra.Command{
		Use:   "view [domain]",
		Short: "browse traces in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args)
			if err != nil {
				return err
			}
			last, err := viz.RunViewer(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("last trace: %s\n", runCommand(last))
			return nil
		},
	}
	addConfigFlags(viewCmd)

	rootCmd.AddCommand(runCmd, invertCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, ensembleCmd, presetsCmd, benchCmd, viewCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", config.DefaultSource, "driving source (brownian, fractional, power)")
	f.Int("points", config.DefaultPoints, "number of trace points")
	f.Float64("tf", config.DefaultTf, "final time (capacity)")
	f.Int64("seed", 0, "random seed (time based unless given)")
	f.Bool("strict", false, "radial: fail on a point at the origin")
	f.Float64("width", config.DefaultWidth, "dipolar strip parameter")
	f.Float64("kappa", config.DefaultKappa, "brownian diffusion constant")
	f.Float64("hurst", config.DefaultHurst, "fractional hurst exponent")
	f.Float64("b", config.DefaultB, "fractional amplitude")
	f.Float64("coeff", 0, "power source coefficient")
	f.Float64("exponent", config.DefaultExp, "power source exponent")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringArrayVar(&overrides, "set", nil, "override a config key, e.g. --set drive.kappa=6")
}

// buildConfig layers defaults, preset, config file, changed flags and --set
// overrides, in that order. The positional domain wins over all of them.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	domain := ""
	if len(args) > 0 {
		domain = args[0]
	}

	if preset != "" {
		d := domain
		if d == "" {
			d = config.DefaultDomain
		}
		p := config.GetPreset(d, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(d))
		}
		cfg = fillDefaults(p)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	var err error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if err != nil || !isConfigFlag(f.Name) {
			return
		}
		err = cfg.Set(f.Name, f.Value.String())
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}

	if domain != "" {
		cfg.Domain = domain
	}
	if !seedRequested(cmd, cfg) {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// seedRequested reports whether a seed was asked for explicitly. --seed and
// --set seed=... may request 0; a config file seed of 0 means time based.
func seedRequested(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("seed") {
		return true
	}
	for _, o := range overrides {
		key, _, _ := strings.Cut(o, "=")
		if strings.EqualFold(strings.TrimSpace(key), "seed") {
			return true
		}
	}
	return configFile != "" && cfg.Seed != 0
}

// fillDefaults completes a preset with the defaults it leaves at zero.
func fillDefaults(p *config.Config) *config.Config {
	def := config.DefaultConfig()
	if p.Width == 0 {
		p.Width = def.Width
	}
	if p.Drive.Hurst == 0 {
		p.Drive.Hurst = def.Drive.Hurst
	}
	if p.Drive.B == 0 {
		p.Drive.B = def.Drive.B
	}
	return p
}

func isConfigFlag(name string) bool {
	for _, f := range configFlags {
		if f == name {
			return true
		}
	}
	return false
}

// runCommand returns the run invocation that reproduces cfg.
func runCommand(cfg *config.Config) string {
	return fmt.Sprintf("loewner run %s --source %s --points %d --tf %g --seed %d --width %g --kappa %g --hurst %g --b %g --coeff %g --exponent %g",
		cfg.Domain, cfg.Source, cfg.Points, cfg.Tf, cfg.Seed, cfg.Width,
		cfg.Drive.Kappa, cfg.Drive.Hurst, cfg.Drive.B, cfg.Drive.Coeff, cfg.Drive.Exponent)
}

func newLogger() l.Wrapper {
	if verbose {
		return l.NewConsoleLoggerWrapper()
	}
	return l.NewNopLoggerWrapper()
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("running %s trace (%s, n=%d)...\n", cfg.Domain, cfg.Source, cfg.Points)
	result, err := experiment.Run(cmd.Context(), cfg, newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("seed: %d\n", result.Seed)
	fmt.Printf("tip: %.6f%+.6fi\n", real(result.Trace.Tip()), imag(result.Trace.Tip()))
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s:\t%.6g\n", name, m[name])
	}
	w.Flush()
}

func invertTrace(cmd *cobra.Command, args []string) error {
	var (
		t      loewner.Times
		u      loewner.Drive
		z      loewner.Trace
		domain = "chordal"
		width  = config.DefaultWidth
	)

	switch {
	case traceFile != "":
		f, err := os.Open(traceFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if t, u, z, err = storage.ReadCSV(f); err != nil {
			return err
		}
	case len(args) == 1:
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		domain = meta.Domain
		if meta.Width > 0 {
			width = meta.Width
		}
		if t, u, z, err = st.LoadTrace(args[0]); err != nil {
			return err
		}
	default:
		return errors.New("need a run id or --file")
	}

	cfg := config.DefaultConfig()
	cfg.Domain = domain
	cfg.Width = width
	inv, err := experiment.NewRegistry().GetInverter(cfg)
	if err != nil {
		return err
	}
	if len(z) == 0 {
		return errors.New("empty trace")
	}

	gotT, gotU := inv.Drive(z, false)
	worst := metrics.RoundTripError(inv, t, u, z)

	fmt.Printf("recovered %d samples, final time %.6f\n", len(gotT), gotT[len(gotT)-1])
	fmt.Printf("max deviation from stored driving: %.3e\n\n", worst)
	if len(gotU) > 1 {
		fmt.Println(asciigraph.Plot(gotU,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("recovered driving function"),
		))
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
	fmt.Fprintln(w, "ID\tDOMAIN\tSOURCE\tTIME\tPOINTS\tTF\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%d\n",
			run.ID,
			run.Domain,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Tf,
			run.Seed,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, loewner.Times, loewner.Drive, loewner.Trace, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	t, u, z, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if len(z) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, t, u, z, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, _, u, z, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("domain: %s\n", meta.Domain)
	fmt.Printf("samples: %d\n\n", len(z))

	fmt.Println(viz.Plot(z, meta.Domain, meta.Width, 60, 20))

	re, im := z.Points()
	series := []struct {
		caption string
		data    []float64
	}{
		{"driving function u(t)", u},
		{"re z", re},
		{"im z", im},
	}
	for _, s := range series {
		if len(s.data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, t, u, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("driving analysis: %s\n", meta.ID)
	fmt.Printf("source: %s\n\n", meta.Source)

	if kappa, err := analysis.EstimateKappa(t, u); err == nil {
		fmt.Printf("kappa estimate: %.4f\n", kappa)
	} else {
		fmt.Printf("kappa estimate: n/a (%v)\n", err)
	}
	if h, err := analysis.EstimateHurst(u, maxLag); err == nil {
		fmt.Printf("hurst estimate: %.4f\n", h)
	} else {
		fmt.Printf("hurst estimate: n/a (%v)\n", err)
	}

	ps := analysis.PowerSpectrum(analysis.Increments(u))
	if len(ps) < 2 {
		return nil
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum of increments"),
	))

	span := t[len(t)-1] - t[0]
	if idx := analysis.DominantFrequency(ps); idx > 0 && span > 0 {
		fmt.Printf("\ndominant frequency: %.3f\n", float64(idx)/span)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, t, u, z, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, t, u, z)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, t, u, z, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, t, u, z)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, _, _, z, err := loadRun(args[0])
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Boundary = export.BoundaryFor(meta.Domain)
	if meta.Width > 0 {
		opts.StripWidth = meta.Width
	}
	svg := export.TraceToSVG(z, opts)
	if svg == "" {
		return fmt.Errorf("run %s has fewer than two points", meta.ID)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	ens := experiment.NewEnsemble(cfg, numRuns, cfg.Seed, newLogger())
	ens.SetWorkers(workers)

	fmt.Printf("running %d %s traces...\n", numRuns, cfg.Domain)
	start := time.Now()
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV")
	for _, s := range experiment.Summarize(results) {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\n", s.Name, s.Mean, s.StdDev)
	}
	return w.Flush()
}

func benchDomain(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	sizes := []int{100, 250, 500, 1000, 2000}

	fmt.Printf("benchmarking %s\n\n", cfg.Domain)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tTIME\tPOINTS/SEC")

	for _, n := range sizes {
		c := cfg.Clone()
		c.Points = n
		result, err := experiment.Run(context.Background(), c, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%v\t%.0f\n", n, result.Elapsed, float64(n)/result.Elapsed.Seconds())
	}

	return w.Flush()
}
