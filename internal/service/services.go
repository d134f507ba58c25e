package service

import (
	"github.com/dom/league-matchmaker/internal/config"
	"github.com/dom/league-matchmaker/internal/repository"
)

type Services struct {
	Auth        *AuthService
	Matchmaking *MatchmakingService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, recorder MatchRecorder, publisher MatchPublisher) *Services {
	return &Services{
		Auth:        NewAuthService(cfg.JWTSecret),
		Matchmaking: NewMatchmakingService(repos.Fixture, RandomRoleOrder(cfg.RoleOrderSeed), recorder, publisher),
	}
}
