package metrics

import (
	"net/http"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matchmaking"

// Metrics records matchmaking activity on its own registry
type Metrics struct {
	registry        *prometheus.Registry
	matchesCreated  prometheus.Counter
	partialMatches  *prometheus.CounterVec
	matchesReported prometheus.Counter
	balanceScore    prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		matchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Matches built from a candidate pool.",
		}),
		partialMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partial_matches_total",
			Help:      "Matches with a role left empty on at least one side, by role.",
		}, []string{"role"}),
		matchesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_reported_total",
			Help:      "Matches reported back by drivers.",
		}),
		balanceScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_balance_score",
			Help:      "Balance metric of built matches, lower is better.",
			Buckets:   []float64{0, 50, 100, 200, 400, 800, 1600, 3200},
		}),
	}

	m.registry.MustRegister(m.matchesCreated, m.partialMatches, m.matchesReported, m.balanceScore)
	return m
}

// ObserveMatch records a built match and the roles it is missing
func (m *Metrics) ObserveMatch(teams *domain.Teams, score float64) {
	m.matchesCreated.Inc()
	m.balanceScore.Observe(score)
	for _, role := range teams.MissingRoles() {
		m.partialMatches.WithLabelValues(role.String()).Inc()
	}
}

func (m *Metrics) ObserveReport() {
	m.matchesReported.Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
