package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	configFile  string
	preset      string
	size        int
	speedMs     int
	seed        int64
	values      string
	theme       string
	logLevel    string
	logFormat   string
	metricsAddr string
	// run
	live      bool
	frameRate int
	// trace
	format  string
	outFile string
	outDir  string
	stepIdx int
	svgW    int
	svgH    int
	// verify
	trials int
	// algorithms
	markdown bool
)

// main registers the sortviz commands and launches the interactive UI when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "sortviz [algorithm]",
		Short:        "step-by-step sorting algorithm visualizer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&size, "size", config.DefaultSize, "array size")
	pf.IntVar(&speedMs, "speed", config.DefaultSpeedMs, "delay between steps in milliseconds")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&values, "values", "", "comma separated input array instead of a random one")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run a paced sort headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSort,
	}
	runCmd.Flags().BoolVar(&live, "live", false, "draw every step in the terminal")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "record every step without pacing and export it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceSort,
	}
	traceCmd.Flags().StringVar(&format, "format", "json", "output format (json, csv, svg)")
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	traceCmd.Flags().StringVar(&outDir, "out-dir", "", "save the trace as a run directory under this path")
	traceCmd.Flags().IntVar(&stepIdx, "step", -1, "step to draw for svg (-1 = last)")
	traceCmd.Flags().IntVar(&svgW, "width", 800, "svg width")
	traceCmd.Flags().IntVar(&svgH, "height", 400, "svg height")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check every engine's step sequences against the protocol",
		Args:  cobra.NoArgs,
		RunE:  verifyEngines,
	}
	verifyCmd.Flags().IntVar(&trials, "trials", 50, "random arrays per engine")

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "plot sort progress per step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSort,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run the same array through every algorithm",
		Args:  cobra.NoArgs,
		RunE:  compareEngines,
	}

	algorithmsCmd := &cobra.Command{
		Use:   "algorithms",
		Short: "list available algorithms",
		Args:  cobra.NoArgs,
		RunE:  listAlgorithms,
	}

	algorithmsCmd.Flags().BoolVar(&markdown, "markdown", false, "render the list as a styled markdown table")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, traceCmd, verifyCmd, plotCmd, compareCmd, algorithmsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the config file and SORTVIZ_* environment, then the
// preset, then explicitly set flags, then the positional algorithm.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Algorithm = p.Algorithm
		cfg.Size = p.Size
		cfg.SpeedMs = p.SpeedMs
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("speed") {
		cfg.SpeedMs = speedMs
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseValues reads a comma separated integer list. An empty string yields
// nil without error.
func parseValues(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// inputArray returns the --values array, or a random one drawn the same way
// the session does.
func inputArray(cfg *config.Config) ([]int, error) {
	vals, err := parseValues(values)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(values) != "" {
		if len(vals) > session.MaxSize {
			vals = vals[:session.MaxSize]
		}
		return vals, nil
	}
	return session.New(cfg.Session()).Snapshot().Array, nil
}

func newController(cfg *config.Config, opts ...session.Option) (*session.Controller, error) {
	ctrl := session.New(cfg.Session(), opts...)
	vals, err := parseValues(values)
	if err != nil {
		return nil, err
	}
	if vals != nil {
		ctrl.SetArray(vals)
	}
	return ctrl, nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	// slog output would corrupt the alternate screen
	ctrl, err := newController(cfg, session.WithLogger(logging.Discard()))
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	p := tea.NewProgram(viz.NewModel(ctx, ctrl, cfg.Theme), tea.WithAltScreen())
	if configFile != "" {
		onChange := func(c *config.Config) { p.Send(viz.ConfigMsg{Config: c}) }
		if err := config.Watch(ctx, configFile, onChange, nil); err != nil {
			return err
		}
	}
	_, err = p.Run()
	ctrl.Pause()
	<-ctrl.Done()
	return err
}
