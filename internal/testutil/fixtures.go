package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/dom/league-matchmaker/internal/domain"
)

// PlayerBuilder creates test players with a builder pattern
type PlayerBuilder struct {
	player domain.Player
}

// NewPlayerBuilder creates a top laner with 1200 mmr who has not waited yet
func NewPlayerBuilder(id string) *PlayerBuilder {
	return &PlayerBuilder{
		player: domain.Player{
			ID:    id,
			Roles: []domain.Role{domain.RoleTop},
			MMR:   1200,
		},
	}
}

// WithRoles sets the declared roles
func (b *PlayerBuilder) WithRoles(roles ...domain.Role) *PlayerBuilder {
	b.player.Roles = roles
	return b
}

// WithMMR sets the rating
func (b *PlayerBuilder) WithMMR(mmr float64) *PlayerBuilder {
	b.player.MMR = mmr
	return b
}

// WithWaitingTime sets the waiting time
func (b *PlayerBuilder) WithWaitingTime(waitingTime float64) *PlayerBuilder {
	b.player.WaitingTime = waitingTime
	return b
}

// Build returns a fresh player
func (b *PlayerBuilder) Build() *domain.Player {
	p := b.player
	p.Roles = append([]domain.Role(nil), b.player.Roles...)
	return &p
}

// FullPool returns ten single-role players, two per role, with ratings
// spread from 1000 upwards and the first of each pair waiting longer
func FullPool() []*domain.Player {
	var pool []*domain.Player
	for i, role := range domain.AllRoles {
		for j := 0; j < 2; j++ {
			pool = append(pool, NewPlayerBuilder(fmt.Sprintf("%s-%d", role, j)).
				WithRoles(role).
				WithMMR(float64(1000+100*i+50*j)).
				WithWaitingTime(float64(20-j)).
				Build())
		}
	}
	return pool
}

// MemoryFixtureRepository keeps fixtures in a map, for handler tests
type MemoryFixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[string]*domain.FixtureEpoch
}

func NewMemoryFixtureRepository() *MemoryFixtureRepository {
	return &MemoryFixtureRepository{fixtures: make(map[string]*domain.FixtureEpoch)}
}

func fixtureKey(testName, epoch string) string {
	return testName + "/" + epoch
}

// Add stores players for an epoch and its successor, nil ending the schedule
func (r *MemoryFixtureRepository) Add(testName, epoch string, next *string, players ...*domain.Player) {
	fixture := &domain.FixtureEpoch{TestName: testName, Epoch: epoch, NextEpoch: next}
	for _, p := range players {
		fixture.Users = append(fixture.Users, *p)
	}
	r.Upsert(context.Background(), fixture)
}

func (r *MemoryFixtureRepository) GetWaitingUsers(ctx context.Context, testName, epoch string) ([]*domain.Player, error) {
	fixture, err := r.get(testName, epoch)
	if err != nil {
		return nil, err
	}
	return fixture.Players(), nil
}

func (r *MemoryFixtureRepository) GetNextEpoch(ctx context.Context, testName, epoch string) (*string, error) {
	fixture, err := r.get(testName, epoch)
	if err != nil {
		return nil, err
	}
	return fixture.NextEpoch, nil
}

func (r *MemoryFixtureRepository) Upsert(ctx context.Context, fixture *domain.FixtureEpoch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fixtures[fixtureKey(fixture.TestName, fixture.Epoch)] = fixture
	return nil
}

func (r *MemoryFixtureRepository) ListTests(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var tests []string
	for _, f := range r.fixtures {
		if !seen[f.TestName] {
			seen[f.TestName] = true
			tests = append(tests, f.TestName)
		}
	}
	sort.Strings(tests)
	return tests, nil
}

func (r *MemoryFixtureRepository) get(testName, epoch string) (*domain.FixtureEpoch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixture, ok := r.fixtures[fixtureKey(testName, epoch)]
	if !ok {
		return nil, fmt.Errorf("epoch %s of %s: %w", epoch, testName, domain.ErrFixtureNotFound)
	}
	return fixture, nil
}

// CreateAuthenticatedRequest builds a JSON request with an optional bearer
// token. A []byte body is sent as is, anything else is marshaled.
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	switch b := body.(type) {
	case nil:
		bodyReader = bytes.NewBuffer(nil)
	case []byte:
		bodyReader = bytes.NewBuffer(b)
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends req and fails the test on transport errors
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
