package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/sortviz/internal/sorting"
)

var csvHeader = []string{"step", "kind", "array", "comparing", "swapping", "sorted"}

// WriteCSV writes one row per step. The array column holds space separated
// values; index sets use their {a,b} form.
func WriteCSV(w io.Writer, steps []sorting.Step) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i, step := range steps {
		row := []string{
			strconv.Itoa(i),
			step.Kind().String(),
			joinInts(step.Array),
			step.Comparing.String(),
			step.Swapping.String(),
			step.Sorted.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
