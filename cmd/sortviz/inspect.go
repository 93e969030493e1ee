package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

var edgeInputs = [][]int{
	{},
	{7},
	{2, 1},
	{1, 2},
	{4, 4, 4, 4},
	{5, 4, 3, 2, 1},
	{1, 2, 3, 4, 5},
	{3, 1, 3, 1, 2, 2},
}

func verifyEngines(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	inputs := append([][]int{}, edgeInputs...)
	for range trials {
		n := rng.Intn(session.MaxSize + 1)
		arr := make([]int, n)
		for i := range arr {
			arr[i] = rng.Intn(session.MaxValue-session.MinValue+1) + session.MinValue
		}
		inputs = append(inputs, arr)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tINPUTS\tSTEPS\tFAILURES")

	var failed []error
	for _, kind := range sorting.Kinds() {
		results, err := sorting.NewEnsemble(kind, inputs).Run(cmd.Context())
		if err != nil {
			return err
		}
		total, failures := 0, 0
		for _, r := range results {
			total += r.Summary.Steps
			if r.Err != nil {
				failures++
				failed = append(failed, fmt.Errorf("%s on %v: %w", kind, r.Input, r.Err))
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", kind, len(inputs), total, failures)
	}
	w.Flush()

	if len(failed) > 0 {
		for _, err := range failed {
			fmt.Fprintln(os.Stderr, err)
		}
		return errors.Join(failed...)
	}
	fmt.Printf("all sequences valid (seed %d)\n", s)
	return nil
}

func plotSort(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	kind, err := sorting.ParseKind(cfg.Algorithm)
	if err != nil {
		return err
	}
	input, err := inputArray(cfg)
	if err != nil {
		return err
	}

	seq, err := sorting.Run(kind, input)
	if err != nil {
		return err
	}

	progress := metrics.NewProgress()
	comparisons := metrics.NewComparisons()
	swaps := metrics.NewSwaps()
	c := metrics.NewCollector(progress, comparisons, swaps)

	var sorted, cmp, swp []float64
	for step := range seq {
		c.Observe(step)
		sorted = append(sorted, progress.Value()*100)
		cmp = append(cmp, comparisons.Value())
		swp = append(swp, swaps.Value())
	}
	if len(sorted) < 2 {
		fmt.Println("not enough steps to plot")
		return nil
	}

	info, _ := sorting.InfoFor(kind)
	fmt.Println(asciigraph.Plot(sorted,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s: sorted %% per step", info.Name)),
	))
	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{cmp, swp},
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.SeriesColors(asciigraph.Yellow, asciigraph.Red),
		asciigraph.Caption("comparisons (yellow) and swaps (red), cumulative"),
	))
	return nil
}

func compareEngines(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	input, err := inputArray(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("comparing on %d values\n\n", len(input))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tCOMPLEXITY\tSTEPS\tCOMPARISONS\tSWAPS")
	for _, kind := range sorting.Kinds() {
		tr, err := export.Record(kind, input)
		if err != nil {
			return err
		}
		info, _ := sorting.InfoFor(kind)
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.0f\n",
			info.Name, info.Complexity,
			tr.Metrics["steps"], tr.Metrics["comparisons"], tr.Metrics["swaps"])
	}
	return w.Flush()
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	if markdown {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			return err
		}
		out, err := r.Render(algorithmsMarkdown())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tCOMPLEXITY\tDESCRIPTION")
	for _, kind := range sorting.Kinds() {
		info, _ := sorting.InfoFor(kind)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kind, info.Name, info.Complexity, info.Description)
	}
	return w.Flush()
}

func algorithmsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Algorithms\n\n")
	b.WriteString("| Kind | Name | Complexity | Description |\n")
	b.WriteString("|------|------|------------|-------------|\n")
	for _, kind := range sorting.Kinds() {
		info, _ := sorting.InfoFor(kind)
		fmt.Fprintf(&b, "| `%s` | %s | %s | %s |\n", kind, info.Name, info.Complexity, info.Description)
	}
	return b.String()
}
