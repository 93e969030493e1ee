package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/sortviz/internal/sorting"
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
	finalFile    = "final.svg"

	svgWidth  = 800
	svgHeight = 400
)

// Store keeps saved traces, one directory per run.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm sorting.Kind       `json:"algorithm"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Size      int                `json:"size"`
	Input     []int              `json:"input"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the trace's metadata, its steps as CSV and an SVG of the
// final step. It returns the run ID.
func (s *Store) Save(t *Trace, seed int64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", t.Algorithm, now.UnixNano(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: t.Algorithm,
		Timestamp: now,
		Seed:      seed,
		Size:      len(t.Input),
		Input:     t.Input,
		Steps:     len(t.Steps),
		Metrics:   t.Metrics,
	}
	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, stepsFile), func(f *os.File) error {
		return WriteCSV(f, t.Steps)
	}); err != nil {
		return "", err
	}

	if final, ok := t.Final(); ok {
		svg := StepToSVG(final, svgWidth, svgHeight)
		if err := os.WriteFile(filepath.Join(runDir, finalFile), []byte(svg), 0644); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the metadata of every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
