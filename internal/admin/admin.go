// Package admin exposes the operational HTTP surface: health probes, a JSON
// statistics snapshot, and prometheus metrics.
package admin

import (
	"encoding/json"
	"net/http"

	"banner-bot/internal/logging"
	"banner-bot/internal/stats"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the admin router. Metrics are mounted only when enabled.
func NewRouter(agg *stats.Aggregator, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", healthCheck).Methods("GET")
	r.HandleFunc("/livez", healthCheck).Methods("GET")
	r.HandleFunc("/stats", statsHandler(agg)).Methods("GET")
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		logging.Debug("failed to write health response: %v", err)
	}
}

func statsHandler(agg *stats.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		snap := agg.Snapshot()
		payload := map[string]interface{}{
			"processed":        snap.Processed,
			"errors":           snap.Errors,
			"averageSeconds":   snap.Average.Seconds(),
			"fastestSeconds":   snap.Fastest.Seconds(),
			"largestFileBytes": snap.LargestFile,
			"uptimeSeconds":    snap.Uptime.Seconds(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logging.Debug("failed to write stats response: %v", err)
		}
	}
}
