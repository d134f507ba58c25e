package service

import (
	"context"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/dom/league-matchmaker/internal/repository"
)

// MatchRecorder receives every match the service builds or is told about
type MatchRecorder interface {
	ObserveMatch(teams *domain.Teams, score float64)
	ObserveReport()
}

// MatchPublisher pushes match events to live subscribers
type MatchPublisher interface {
	PublishMatchCreated(match *domain.MatchResult)
	PublishMatchReported(match *domain.MatchResult, nextEpoch *string)
}

type MatchmakingService struct {
	fixtureRepo repository.FixtureRepository
	roleOrder   RoleOrderFunc
	recorder    MatchRecorder
	publisher   MatchPublisher
}

func NewMatchmakingService(
	fixtureRepo repository.FixtureRepository,
	roleOrder RoleOrderFunc,
	recorder MatchRecorder,
	publisher MatchPublisher,
) *MatchmakingService {
	if roleOrder == nil {
		roleOrder = FixedRoleOrder(domain.AllRoles...)
	}
	return &MatchmakingService{
		fixtureRepo: fixtureRepo,
		roleOrder:   roleOrder,
		recorder:    recorder,
		publisher:   publisher,
	}
}

// CreateMatchInput is a request to build one match from the given pool
type CreateMatchInput struct {
	TestName string
	Epoch    string
	Users    []*domain.Player
}

// CreatedMatch is a built match with the details callers log or inspect
type CreatedMatch struct {
	Result    *domain.MatchResult
	Teams     *domain.Teams
	RoleOrder []domain.Role
	Score     float64
}

// GetWaitingUsers returns the players waiting in a test at an epoch
func (s *MatchmakingService) GetWaitingUsers(ctx context.Context, testName, epoch string) (*domain.WaitingUsers, error) {
	users, err := s.fixtureRepo.GetWaitingUsers(ctx, testName, epoch)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.Player{}
	}
	return &domain.WaitingUsers{User: users}, nil
}

// CreateMatch builds a match from the input pool with a fresh role order
func (s *MatchmakingService) CreateMatch(ctx context.Context, input CreateMatchInput) (*CreatedMatch, error) {
	order := s.roleOrder()

	teams, err := BuildMatch(input.Users, order)
	if err != nil {
		return nil, err
	}

	created := &CreatedMatch{
		Result:    AssembleMatch(input.TestName, input.Epoch, teams),
		Teams:     teams,
		RoleOrder: order,
		Score:     BalanceMetric(teams.Red, teams.Blue),
	}

	if s.recorder != nil {
		s.recorder.ObserveMatch(teams, created.Score)
	}
	if s.publisher != nil {
		s.publisher.PublishMatchCreated(created.Result)
	}

	return created, nil
}

// ReportMatch acknowledges a match played at epoch and returns the epoch
// that follows it, nil when the test is over. Reported matches are not stored.
func (s *MatchmakingService) ReportMatch(ctx context.Context, testName, epoch string, match *domain.MatchResult) (*string, error) {
	next, err := s.fixtureRepo.GetNextEpoch(ctx, testName, epoch)
	if err != nil {
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.ObserveReport()
	}
	if s.publisher != nil {
		s.publisher.PublishMatchReported(match, next)
	}

	return next, nil
}
