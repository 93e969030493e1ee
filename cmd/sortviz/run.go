package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/httpapi"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/tui"
)

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	opts := []session.Option{session.WithLogger(logger)}

	var renderer *tui.LiveRenderer
	if live {
		renderer = tui.NewLiveRenderer(os.Stdout, frameRate, true)
		renderer.Start()
		defer renderer.Stop()
		opts = append(opts, session.WithObserver(renderer))
	}

	ctrl, err := newController(cfg, opts...)
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		ctrl.AddObserver(session.RecordTo(metrics.NewRecorder(reg)))

		shutdown := serveHTTP(cfg.Metrics.Addr, httpapi.NewHandler(reg, ctrl.Snapshot, logger), logger)
		defer shutdown()
	}

	ctrl.Start(ctx)
	<-ctrl.Done()

	st := ctrl.Snapshot()
	if !live {
		printSummary(st)
	}
	if !st.Complete {
		logger.Warn("run did not complete", "steps", st.Steps)
	}
	return nil
}

// serveHTTP serves h on addr and returns a shutdown func.
func serveHTTP(addr string, h http.Handler, logger *slog.Logger) func() {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving http", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("http server shutdown", "error", err)
		}
	}
}

func printSummary(st session.State) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "algorithm\t%s\n", st.Algorithm)
	fmt.Fprintf(w, "size\t%d\n", len(st.Array))
	fmt.Fprintf(w, "complete\t%v\n", st.Complete)
	fmt.Fprintf(w, "steps\t%d\n", st.Steps)
	fmt.Fprintf(w, "comparisons\t%d\n", st.Comparisons)
	fmt.Fprintf(w, "swaps\t%d\n", st.Swaps)
	fmt.Fprintf(w, "elapsed\t%s\n", st.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "array\t%v\n", st.Array)
	w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tALGORITHM\tSIZE\tDELAY")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, p.Algorithm, p.Size, p.Speed())
	}
	return w.Flush()
}
