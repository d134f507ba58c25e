package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/league-matchmaker/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type fixtureRepository struct {
	db *gorm.DB
}

func NewFixtureRepository(db *gorm.DB) *fixtureRepository {
	return &fixtureRepository{db: db}
}

func (r *fixtureRepository) GetWaitingUsers(ctx context.Context, testName, epoch string) ([]*domain.Player, error) {
	fixture, err := r.get(ctx, testName, epoch)
	if err != nil {
		return nil, err
	}
	return fixture.Players(), nil
}

func (r *fixtureRepository) GetNextEpoch(ctx context.Context, testName, epoch string) (*string, error) {
	fixture, err := r.get(ctx, testName, epoch)
	if err != nil {
		return nil, err
	}
	return fixture.NextEpoch, nil
}

// Upsert stores an epoch, replacing its users and successor if it already exists
func (r *fixtureRepository) Upsert(ctx context.Context, fixture *domain.FixtureEpoch) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "test_name"}, {Name: "epoch"}},
		DoUpdates: clause.AssignmentColumns([]string{"next_epoch", "users", "updated_at"}),
	}).Create(fixture).Error
}

func (r *fixtureRepository) ListTests(ctx context.Context) ([]string, error) {
	var tests []string
	err := r.db.WithContext(ctx).
		Model(&domain.FixtureEpoch{}).
		Distinct("test_name").
		Order("test_name").
		Pluck("test_name", &tests).Error
	if err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *fixtureRepository) get(ctx context.Context, testName, epoch string) (*domain.FixtureEpoch, error) {
	var fixture domain.FixtureEpoch
	err := r.db.WithContext(ctx).
		Where("test_name = ? AND epoch = ?", testName, epoch).
		First(&fixture).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("epoch %s of %s: %w", epoch, testName, domain.ErrFixtureNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &fixture, nil
}
