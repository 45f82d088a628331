package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalyzeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "analyze_requests_total", Help: "Analyze requests by outcome"},
		[]string{"outcome"},
	)
	AnalyzeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "analyze_duration_seconds", Help: "Wall time of one analyze batch"},
	)
	MacroRefreshTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "macro_refresh_total", Help: "Macro snapshot refresh cycles"},
	)
	MacroScore = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "macro_score", Help: "Latest macro composite score (0-100)"},
	)
)

func init() {
	prometheus.MustRegister(AnalyzeTotal, AnalyzeDuration, MacroRefreshTotal, MacroScore)
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
