package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dom/league-matchmaker/internal/domain"
)

// scheduleFile maps each epoch of a test to the epoch that follows it
const scheduleFile = "test.json"

type fixtureRepository struct {
	root string
}

// NewFixtureRepository reads fixtures laid out as <root>/<test>/<epoch>.json
// with the epoch schedule in <root>/<test>/test.json
func NewFixtureRepository(root string) *fixtureRepository {
	return &fixtureRepository{root: root}
}

func (r *fixtureRepository) GetWaitingUsers(ctx context.Context, testName, epoch string) ([]*domain.Player, error) {
	path, err := r.path(testName, epoch+".json")
	if err != nil {
		return nil, err
	}

	var payload domain.WaitingUsers
	if err := readJSON(path, &payload); err != nil {
		return nil, err
	}
	return payload.User, nil
}

func (r *fixtureRepository) GetNextEpoch(ctx context.Context, testName, epoch string) (*string, error) {
	path, err := r.path(testName, scheduleFile)
	if err != nil {
		return nil, err
	}

	var schedule map[string]*string
	if err := readJSON(path, &schedule); err != nil {
		return nil, err
	}
	next, ok := schedule[epoch]
	if !ok {
		return nil, fmt.Errorf("epoch %s of %s: %w", epoch, testName, domain.ErrFixtureNotFound)
	}
	return next, nil
}

// ListTests returns the test directories under the root, sorted
func (r *fixtureRepository) ListTests(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, err
	}
	var tests []string
	for _, e := range entries {
		if e.IsDir() {
			tests = append(tests, e.Name())
		}
	}
	sort.Strings(tests)
	return tests, nil
}

// LoadTest reads every epoch of a test, following test.json
func (r *fixtureRepository) LoadTest(ctx context.Context, testName string) ([]*domain.FixtureEpoch, error) {
	path, err := r.path(testName, scheduleFile)
	if err != nil {
		return nil, err
	}
	var schedule map[string]*string
	if err := readJSON(path, &schedule); err != nil {
		return nil, err
	}

	epochs := make([]string, 0, len(schedule))
	for epoch := range schedule {
		epochs = append(epochs, epoch)
	}
	sort.Strings(epochs)

	fixtures := make([]*domain.FixtureEpoch, 0, len(epochs))
	for _, epoch := range epochs {
		users, err := r.GetWaitingUsers(ctx, testName, epoch)
		if err != nil {
			return nil, err
		}
		fixture := &domain.FixtureEpoch{
			TestName:  testName,
			Epoch:     epoch,
			NextEpoch: schedule[epoch],
		}
		for _, u := range users {
			fixture.Users = append(fixture.Users, *u)
		}
		fixtures = append(fixtures, fixture)
	}
	return fixtures, nil
}

// path joins the parts under the root, refusing names that would leave it
func (r *fixtureRepository) path(testName, file string) (string, error) {
	for _, part := range []string{testName, file} {
		if part == "" || part != filepath.Base(part) || strings.HasPrefix(part, ".") {
			return "", fmt.Errorf("%q: %w", part, domain.ErrInvalidFixture)
		}
	}
	return filepath.Join(r.root, testName, file), nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, domain.ErrFixtureNotFound)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
