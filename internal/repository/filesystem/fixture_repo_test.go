package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/dom/league-matchmaker/internal/repository/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	epoch0 = "00000000-0000-0000-0000-000000000000"
	epoch1 = "6b0c4f0e-3b6f-4b0a-9d3e-2f8f0f3c1a01"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newFixtureDir lays out test_0 with two epochs and an empty test_1 directory
func newFixtureDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "test_0", epoch0+".json"), `{"user": [
		{"id": "a", "roles": ["top", "mid"], "mmr": 1200, "waitingTime": 12.5},
		{"id": "b", "roles": ["sup"], "mmr": 980, "waitingTime": 3}
	]}`)
	writeFile(t, filepath.Join(root, "test_0", epoch1+".json"), `{"user": []}`)
	writeFile(t, filepath.Join(root, "test_0", "test.json"), `{
		"`+epoch0+`": "`+epoch1+`",
		"`+epoch1+`": null
	}`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "test_1"), 0o755))
	writeFile(t, filepath.Join(root, "notes.txt"), "not a test")

	return root
}

func TestFixtureRepository_GetWaitingUsers(t *testing.T) {
	repo := filesystem.NewFixtureRepository(newFixtureDir(t))
	ctx := context.Background()

	users, err := repo.GetWaitingUsers(ctx, "test_0", epoch0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, &domain.Player{
		ID:          "a",
		Roles:       []domain.Role{domain.RoleTop, domain.RoleMid},
		MMR:         1200,
		WaitingTime: 12.5,
	}, users[0])
	assert.Equal(t, domain.RoleSupport, users[1].Roles[0])

	users, err = repo.GetWaitingUsers(ctx, "test_0", epoch1)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestFixtureRepository_GetNextEpoch(t *testing.T) {
	repo := filesystem.NewFixtureRepository(newFixtureDir(t))
	ctx := context.Background()

	next, err := repo.GetNextEpoch(ctx, "test_0", epoch0)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, epoch1, *next)

	next, err = repo.GetNextEpoch(ctx, "test_0", epoch1)
	require.NoError(t, err)
	assert.Nil(t, next)

	_, err = repo.GetNextEpoch(ctx, "test_0", "11111111-1111-1111-1111-111111111111")
	assert.ErrorIs(t, err, domain.ErrFixtureNotFound)

	_, err = repo.GetNextEpoch(ctx, "test_1", epoch0)
	assert.ErrorIs(t, err, domain.ErrFixtureNotFound, "test without a schedule")
}

func TestFixtureRepository_RejectsEscapingNames(t *testing.T) {
	repo := filesystem.NewFixtureRepository(newFixtureDir(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		testName string
		epoch    string
	}{
		{name: "parent test", testName: "..", epoch: epoch0},
		{name: "nested test", testName: "test_0/../test_1", epoch: epoch0},
		{name: "empty test", testName: "", epoch: epoch0},
		{name: "epoch with separator", testName: "test_0", epoch: "../test_0/" + epoch0},
		{name: "empty epoch", testName: "test_0", epoch: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetWaitingUsers(ctx, tt.testName, tt.epoch)
			assert.ErrorIs(t, err, domain.ErrInvalidFixture)
		})
	}
}

func TestFixtureRepository_MissingFiles(t *testing.T) {
	repo := filesystem.NewFixtureRepository(newFixtureDir(t))
	ctx := context.Background()

	_, err := repo.GetWaitingUsers(ctx, "test_9", epoch0)
	assert.ErrorIs(t, err, domain.ErrFixtureNotFound)

	_, err = repo.GetWaitingUsers(ctx, "test_1", epoch0)
	assert.ErrorIs(t, err, domain.ErrFixtureNotFound)
}

func TestFixtureRepository_MalformedFile(t *testing.T) {
	root := newFixtureDir(t)
	writeFile(t, filepath.Join(root, "test_1", epoch0+".json"), `{"user": [`)
	repo := filesystem.NewFixtureRepository(root)

	_, err := repo.GetWaitingUsers(context.Background(), "test_1", epoch0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrFixtureNotFound)
}

func TestFixtureRepository_ListAndLoad(t *testing.T) {
	repo := filesystem.NewFixtureRepository(newFixtureDir(t))
	ctx := context.Background()

	tests, err := repo.ListTests(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_0", "test_1"}, tests)

	fixtures, err := repo.LoadTest(ctx, "test_0")
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, epoch0, fixtures[0].Epoch)
	require.NotNil(t, fixtures[0].NextEpoch)
	assert.Equal(t, epoch1, *fixtures[0].NextEpoch)
	assert.Len(t, fixtures[0].Users, 2)
	assert.Equal(t, "test_0", fixtures[0].TestName)

	assert.Equal(t, epoch1, fixtures[1].Epoch)
	assert.Nil(t, fixtures[1].NextEpoch)
	assert.Empty(t, fixtures[1].Users)

	_, err = repo.LoadTest(ctx, "test_1")
	assert.ErrorIs(t, err, domain.ErrFixtureNotFound)
}

func TestFixtureRepository_BundledFixtures(t *testing.T) {
	repo := filesystem.NewFixtureRepository(filepath.Join("..", "..", "..", "fixtures"))
	ctx := context.Background()

	tests, err := repo.ListTests(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tests)

	for _, name := range tests {
		fixtures, err := repo.LoadTest(ctx, name)
		require.NoError(t, err, name)
		for _, f := range fixtures {
			for _, u := range f.Users {
				assert.NotEmpty(t, u.Roles, "%s/%s: %s has no roles", name, f.Epoch, u.ID)
				for _, role := range u.Roles {
					assert.True(t, role.IsValid(), "%s/%s: %s declares %q", name, f.Epoch, u.ID, role)
				}
			}
		}
	}
}
