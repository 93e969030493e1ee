// Package httpapi exposes a running session over HTTP: Prometheus metrics,
// a liveness probe and a JSON view of the current state.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/sorting"
)

// StateFunc returns the state to publish on /state.
type StateFunc func() session.State

// StateView is the JSON shape of /state.
type StateView struct {
	Algorithm   sorting.Kind     `json:"algorithm"`
	Array       []int            `json:"array"`
	Comparing   sorting.IndexSet `json:"comparing"`
	Swapping    sorting.IndexSet `json:"swapping"`
	Sorted      sorting.IndexSet `json:"sorted"`
	Running     bool             `json:"running"`
	Complete    bool             `json:"complete"`
	Steps       int              `json:"steps"`
	Comparisons int              `json:"comparisons"`
	Swaps       int              `json:"swaps"`
	ElapsedMs   int64            `json:"elapsed_ms"`
	SpeedMs     int64            `json:"speed_ms"`
}

func viewOf(st session.State) StateView {
	return StateView{
		Algorithm:   st.Algorithm,
		Array:       st.Array,
		Comparing:   st.Comparing,
		Swapping:    st.Swapping,
		Sorted:      st.Sorted,
		Running:     st.Running,
		Complete:    st.Complete,
		Steps:       st.Steps,
		Comparisons: st.Comparisons,
		Swaps:       st.Swaps,
		ElapsedMs:   st.Elapsed.Milliseconds(),
		SpeedMs:     st.Speed.Milliseconds(),
	}
}

// NewHandler routes /metrics, /healthz and /state. A nil state func leaves
// /state unrouted.
func NewHandler(g prometheus.Gatherer, state StateFunc, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	if state != nil {
		r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, logger, viewOf(state()))
		})
	}
	return r
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encode response", "error", err)
	}
}
