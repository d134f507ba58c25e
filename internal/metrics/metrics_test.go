package metrics

import (
	"testing"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveMatch(t *testing.T) {
	m := New()

	p1 := &domain.Player{ID: "1", Roles: []domain.Role{domain.RoleTop}, MMR: 1000}
	p2 := &domain.Player{ID: "2", Roles: []domain.Role{domain.RoleTop}, MMR: 1100}
	teams := &domain.Teams{
		Red:  domain.Roster{}.With(p1, domain.RoleTop),
		Blue: domain.Roster{}.With(p2, domain.RoleTop),
	}

	m.ObserveMatch(teams, 100)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.matchesCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.partialMatches.WithLabelValues("top")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.partialMatches.WithLabelValues("mid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.partialMatches.WithLabelValues("jungle")))
}

func TestMetrics_ObserveReport(t *testing.T) {
	m := New()
	m.ObserveReport()
	m.ObserveReport()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.matchesReported))
}
