package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies an {"error": ...} response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var body struct {
		Error string `json:"error"`
	}
	AssertJSONResponse(t, resp, &body)
	assert.Contains(t, body.Error, expectedMessage, "error message mismatch")
}

// AssertValidTeams checks the invariants every built match must hold: no
// player twice, every role declared by its player, one player per role per side
func AssertValidTeams(t *testing.T, teams *domain.Teams) {
	t.Helper()

	seen := make(map[string]domain.Side)
	for side, roster := range map[domain.Side]domain.Roster{domain.SideRed: teams.Red, domain.SideBlue: teams.Blue} {
		roles := make(map[domain.Role]bool)
		for _, a := range roster {
			if prev, dup := seen[a.ID]; dup {
				t.Errorf("player %s assigned to %s and %s", a.ID, prev, side)
			}
			seen[a.ID] = side

			assert.True(t, a.CanPlay(a.CurrentRole), "player %s assigned undeclared role %s", a.ID, a.CurrentRole)
			assert.False(t, roles[a.CurrentRole], "%s has two players at %s", side, a.CurrentRole)
			roles[a.CurrentRole] = true
		}
	}
}

// AssertRosterIDs checks the ids on a roster in assignment order
func AssertRosterIDs(t *testing.T, roster domain.Roster, expected ...string) {
	t.Helper()

	var ids []string
	for _, a := range roster {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, expected, ids)
}
