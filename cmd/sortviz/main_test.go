package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

func TestParseValues(t *testing.T) {
	got, err := parseValues(" 5, 3,1 ,")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 1}, got)

	got, err = parseValues("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseValues("1,x")
	assert.Error(t, err)
}

// newTestCmd mirrors the persistent flags the root command registers.
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.IntVar(&size, "size", 30, "")
	f.IntVar(&speedMs, "speed", 100, "")
	f.Int64Var(&seed, "seed", 0, "")
	f.StringVar(&theme, "theme", "cyberpunk", "")
	f.StringVar(&logLevel, "log-level", "info", "")
	f.StringVar(&logFormat, "log-format", "text", "")
	return cmd
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Cleanup(func() { preset, configFile = "", "" })

	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--size", "12"}))
	preset = "stress"

	cfg, err := resolveConfig(cmd, []string{"quick"})
	require.NoError(t, err)

	assert.Equal(t, "quick", cfg.Algorithm)
	assert.Equal(t, 12, cfg.Size)
	assert.Equal(t, 10, cfg.SpeedMs)
}

func TestResolveConfigClampsAndRejects(t *testing.T) {
	t.Cleanup(func() { preset, configFile = "", "" })

	cmd := newTestCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--size", "1000"}))
	cfg, err := resolveConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, session.MaxSize, cfg.Size)

	_, err = resolveConfig(newTestCmd(), []string{"bogo"})
	assert.ErrorIs(t, err, sorting.ErrUnknownAlgorithm)

	preset = "nope"
	_, err = resolveConfig(newTestCmd(), nil)
	assert.Error(t, err)
}

func TestInputArray(t *testing.T) {
	t.Cleanup(func() { values, preset, configFile = "", "", "" })

	values = "4,2,9"
	cfg, err := resolveConfig(newTestCmd(), nil)
	require.NoError(t, err)
	got, err := inputArray(cfg)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 9}, got)

	values = ""
	cfg.Seed = 5
	a, err := inputArray(cfg)
	require.NoError(t, err)
	b, err := inputArray(cfg)
	require.NoError(t, err)
	assert.Len(t, a, cfg.Size)
	assert.Equal(t, a, b)
}

func TestPickStep(t *testing.T) {
	tr, err := export.Record(sorting.KindBubble, []int{2, 1})
	require.NoError(t, err)

	last, err := pickStep(tr, -1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, last.Array)

	first, err := pickStep(tr, 0)
	require.NoError(t, err)
	assert.Equal(t, sorting.StepCompare, first.Kind())

	_, err = pickStep(tr, 99)
	assert.Error(t, err)

	empty, err := export.Record(sorting.KindMerge, nil)
	require.NoError(t, err)
	step, err := pickStep(empty, -1)
	require.NoError(t, err)
	assert.Empty(t, step.Array)
}

func TestAlgorithmsMarkdown(t *testing.T) {
	md := algorithmsMarkdown()
	lines := strings.Split(strings.TrimSpace(md), "\n")

	require.Len(t, lines, 4+len(sorting.Kinds()))
	assert.Equal(t, "# Algorithms", lines[0])
	for _, kind := range sorting.Kinds() {
		assert.Contains(t, md, "| `"+string(kind)+"` |")
	}
}

func TestExportTraceUnknownFormat(t *testing.T) {
	tr, err := export.Record(sorting.KindBubble, []int{2, 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trace.out")
	err = exportTrace(tr, "xml", path, export.DefaultPalette)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created for an unknown format")
}

func TestExportTraceJSONFile(t *testing.T) {
	tr, err := export.Record(sorting.KindQuick, []int{3, 1, 2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, exportTrace(tr, "JSON", path, export.DefaultPalette))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got export.Trace
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sorting.KindQuick, got.Algorithm)
	assert.Len(t, got.Steps, len(tr.Steps))
}
