package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_WithDoesNotAlias(t *testing.T) {
	a := &domain.Player{ID: "a", Roles: []domain.Role{domain.RoleTop}, MMR: 1000}
	b := &domain.Player{ID: "b", Roles: []domain.Role{domain.RoleMid}, MMR: 1100}
	c := &domain.Player{ID: "c", Roles: []domain.Role{domain.RoleMid}, MMR: 1200}

	base := domain.Roster{}.With(a, domain.RoleTop)
	withB := base.With(b, domain.RoleMid)
	withC := base.With(c, domain.RoleMid)

	assert.Len(t, base, 1)
	assert.Equal(t, "b", withB[1].ID)
	assert.Equal(t, "c", withC[1].ID)
}

func TestRoster_AverageMMR(t *testing.T) {
	assert.Zero(t, domain.Roster{}.AverageMMR())

	r := domain.Roster{}.
		With(&domain.Player{ID: "a", MMR: 1000}, domain.RoleTop).
		With(&domain.Player{ID: "b", MMR: 1500}, domain.RoleMid)
	assert.InDelta(t, 1250.0, r.AverageMMR(), 1e-9)
}

func TestTeams_MissingRoles(t *testing.T) {
	p := func(id string) *domain.Player { return &domain.Player{ID: id} }

	teams := domain.Teams{
		Red:  domain.Roster{}.With(p("r1"), domain.RoleTop).With(p("r2"), domain.RoleMid),
		Blue: domain.Roster{}.With(p("b1"), domain.RoleTop),
	}
	assert.Equal(t, []domain.Role{domain.RoleMid, domain.RoleBot, domain.RoleSupport, domain.RoleJungle}, teams.MissingRoles())
	assert.False(t, teams.IsComplete())

	for i, role := range domain.AllRoles {
		if !teams.Red.HasRole(role) {
			teams.Red = teams.Red.With(p("r"+role.String()), role)
		}
		if !teams.Blue.HasRole(role) {
			teams.Blue = teams.Blue.With(p("b"+role.String()), role)
		}
		assert.Len(t, teams.MissingRoles(), len(domain.AllRoles)-1-i)
	}
	assert.True(t, teams.IsComplete())
}

func TestAssignment_JSON(t *testing.T) {
	a := domain.Assignment{
		Player:      &domain.Player{ID: "u1", Roles: []domain.Role{domain.RoleBot, domain.RoleSupport}, MMR: 1234.5, WaitingTime: 7},
		CurrentRole: domain.RoleSupport,
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "u1",
		"roles": ["bot", "sup"],
		"mmr": 1234.5,
		"waitingTime": 7,
		"current_role": "sup"
	}`, string(data))

	var decoded domain.Assignment
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, a, decoded)
}

func TestRole(t *testing.T) {
	for _, role := range domain.AllRoles {
		assert.True(t, role.IsValid(), role)
		assert.NotEqual(t, role.String(), role.DisplayName())
	}
	assert.False(t, domain.Role("support").IsValid())
	assert.False(t, domain.Role("").IsValid())
	assert.Equal(t, "adc", domain.Role("adc").DisplayName())
}

func TestPlayer_CanPlay(t *testing.T) {
	p := &domain.Player{ID: "flex", Roles: []domain.Role{domain.RoleTop, domain.RoleJungle}}

	assert.True(t, p.CanPlay(domain.RoleTop))
	assert.True(t, p.CanPlay(domain.RoleJungle))
	assert.False(t, p.CanPlay(domain.RoleMid))
}

func TestFixtureEpoch_PlayersAreCopies(t *testing.T) {
	f := &domain.FixtureEpoch{Users: []domain.Player{{ID: "a", MMR: 1000}, {ID: "b", MMR: 1100}}}

	players := f.Players()
	require.Len(t, players, 2)
	players[0].MMR = 9999

	assert.Equal(t, 1000.0, f.Users[0].MMR)
	assert.Equal(t, "b", players[1].ID)
}
