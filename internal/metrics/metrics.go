package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_lookups_total",
		Help: "Total number of district lookup requests",
	})
	LookupMatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_lookup_matches_total",
		Help: "Total lookups that matched at least one district",
	})
	LookupMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_lookup_misses_total",
		Help: "Total lookups outside all mapped boundaries",
	})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dlens_lookup_duration_ms",
		Help:    "District lookup duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	BoundaryLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dlens_boundary_loads_total",
		Help: "Boundary collection load attempts by chamber and outcome",
	}, []string{"chamber", "status"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_cache_hits_total",
		Help: "Total lookup results served from the Redis cache",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_cache_misses_total",
		Help: "Total lookup cache misses",
	})
	ScenarioTogglesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_scenario_toggles_total",
		Help: "Total district toggles across all scenario sessions",
	})
	ScenarioSessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlens_scenario_sessions_total",
		Help: "Total scenario sessions created",
	})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupMatchesTotal)
	prometheus.MustRegister(LookupMissesTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(BoundaryLoadsTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(ScenarioTogglesTotal)
	prometheus.MustRegister(ScenarioSessionsTotal)
}

// Handler exposes the registered metrics for Prometheus scraping; mounted at
// /metrics in main.
func Handler() http.Handler { return promhttp.Handler() }
