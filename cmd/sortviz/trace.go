package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/viz"
)

func traceSort(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	kind, err := sorting.ParseKind(cfg.Algorithm)
	if err != nil {
		return err
	}
	input, err := inputArray(cfg)
	if err != nil {
		return err
	}

	tr, err := export.Record(kind, input)
	if err != nil {
		return err
	}
	logger.Debug("trace recorded", "algorithm", kind, "size", len(input), "steps", len(tr.Steps))

	if outDir != "" {
		st := export.NewStore(outDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(tr, cfg.Seed)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", runID)
		return nil
	}

	palette := viz.GetTheme(cfg.Theme).Palette()
	if err := exportTrace(tr, format, outFile, palette); err != nil {
		return err
	}

	if outFile != "" {
		logger.Info("trace exported", "path", outFile, "format", format, "steps", len(tr.Steps))
	}
	return nil
}

var traceFormats = []string{"json", "csv", "svg"}

// exportTrace writes tr in format to path, or to stdout when path is empty.
// The format is checked before path is created.
func exportTrace(tr *export.Trace, format, path string, palette export.Palette) (err error) {
	format = strings.ToLower(format)
	if !slices.Contains(traceFormats, format) {
		return fmt.Errorf("unknown format: %s (available: %s)", format, strings.Join(traceFormats, ", "))
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch format {
	case "json":
		return export.WriteJSON(w, tr)
	case "csv":
		return export.WriteCSV(w, tr.Steps)
	default:
		step, err := pickStep(tr, stepIdx)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, palette.StepToSVG(step, svgW, svgH))
		return err
	}
}

// pickStep returns step i of the trace; a negative i selects the last step.
func pickStep(tr *export.Trace, i int) (sorting.Step, error) {
	if len(tr.Steps) == 0 {
		return sorting.Step{Array: tr.Input}, nil
	}
	if i < 0 {
		i = len(tr.Steps) - 1
	}
	if i >= len(tr.Steps) {
		return sorting.Step{}, fmt.Errorf("step %d out of range (trace has %d steps)", i, len(tr.Steps))
	}
	return tr.Steps[i], nil
}
