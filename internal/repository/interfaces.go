package repository

import (
	"context"

	"github.com/dom/league-matchmaker/internal/domain"
)

// FixtureRepository serves the waiting players of a named test at a given epoch
// and the epoch that follows it. Missing fixtures return domain.ErrFixtureNotFound.
type FixtureRepository interface {
	GetWaitingUsers(ctx context.Context, testName, epoch string) ([]*domain.Player, error)
	GetNextEpoch(ctx context.Context, testName, epoch string) (*string, error)
}

// FixtureStore is a FixtureRepository that can also be written to
type FixtureStore interface {
	FixtureRepository
	Upsert(ctx context.Context, fixture *domain.FixtureEpoch) error
	ListTests(ctx context.Context) ([]string, error)
}

type Repositories struct {
	Fixture FixtureRepository
}
