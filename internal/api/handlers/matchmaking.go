package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/dom/league-matchmaker/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

type MatchmakingHandler struct {
	matchmakingService *service.MatchmakingService
	validate           *validator.Validate
}

func NewMatchmakingHandler(matchmakingService *service.MatchmakingService) *MatchmakingHandler {
	return &MatchmakingHandler{
		matchmakingService: matchmakingService,
		validate:           validator.New(validator.WithRequiredStructEnabled()),
	}
}

type PlayerRequest struct {
	ID          string        `json:"id" validate:"required"`
	Roles       []domain.Role `json:"roles" validate:"required,min=1,dive,required"`
	MMR         *float64      `json:"mmr" validate:"required"`
	WaitingTime *float64      `json:"waitingTime" validate:"required"`
}

type CreateMatchRequest struct {
	TestName string          `json:"test_name" validate:"required,max=100"`
	Epoch    string          `json:"epoch" validate:"required,uuid"`
	Users    []PlayerRequest `json:"users" validate:"required,min=1,dive"`
}

type ReportMatchResponse struct {
	Epoch    *string `json:"epoch"`
	TestName string  `json:"test_name"`
}

func (h *MatchmakingHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong!"))
}

// GetWaitingUsers serves the fixture for ?test_name=&epoch=
func (h *MatchmakingHandler) GetWaitingUsers(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	testName, epoch, msg := testParams(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	users, err := h.matchmakingService.GetWaitingUsers(r.Context(), testName, epoch)
	if err != nil {
		h.fail(w, r, "matchmaking.GetWaitingUsers", err)
		return
	}

	log.Debug().Str("test_name", testName).Str("epoch", epoch).Int("users", len(users.User)).Msg("served waiting users")
	writeJSON(w, http.StatusOK, users)
}

// CreateMatch builds one match from the posted pool
func (h *MatchmakingHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Str("handler", "matchmaking.CreateMatch").Msg("invalid request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn().Err(err).Str("handler", "matchmaking.CreateMatch").Msg("request validation failed")
		writeError(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	created, err := h.matchmakingService.CreateMatch(r.Context(), service.CreateMatchInput{
		TestName: req.TestName,
		Epoch:    req.Epoch,
		Users:    lo.Map(req.Users, toPlayer),
	})
	if err != nil {
		h.fail(w, r, "matchmaking.CreateMatch", err)
		return
	}

	event := log.Info()
	if missing := created.Teams.MissingRoles(); len(missing) > 0 {
		event = log.Warn().Strs("missing_roles", lo.Map(missing, func(role domain.Role, _ int) string { return role.String() }))
	}
	event.
		Str("test_name", req.TestName).
		Str("epoch", req.Epoch).
		Int("pool", len(req.Users)).
		Int("red", len(created.Teams.Red)).
		Int("blue", len(created.Teams.Blue)).
		Float64("balance", created.Score).
		Msg("match created")

	writeJSON(w, http.StatusOK, created.Result)
}

// ReportMatch takes a played match for ?test_name=&epoch= and answers with the next epoch
func (h *MatchmakingHandler) ReportMatch(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	testName, epoch, msg := testParams(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var match domain.MatchResult
	if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
		log.Warn().Err(err).Str("handler", "matchmaking.ReportMatch").Msg("invalid request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	next, err := h.matchmakingService.ReportMatch(r.Context(), testName, epoch, &match)
	if err != nil {
		h.fail(w, r, "matchmaking.ReportMatch", err)
		return
	}

	log.Info().
		Str("test_name", testName).
		Str("epoch", epoch).
		Interface("match", match.Match).
		Msg("match reported")

	writeJSON(w, http.StatusOK, ReportMatchResponse{Epoch: next, TestName: testName})
}

func (h *MatchmakingHandler) fail(w http.ResponseWriter, r *http.Request, handler string, err error) {
	log := zerolog.Ctx(r.Context())

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidFixture):
		log.Warn().Err(err).Str("handler", handler).Msg("rejected request")
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrFixtureNotFound):
		log.Warn().Err(err).Str("handler", handler).Msg("fixture not found")
		writeError(w, http.StatusNotFound, "File not found")
	default:
		log.Error().Err(err).Str("handler", handler).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// testParams reads test_name and epoch from the query, returning a message
// for the client when they are unusable
func testParams(r *http.Request) (testName, epoch, msg string) {
	testName = r.URL.Query().Get("test_name")
	epoch = r.URL.Query().Get("epoch")
	if testName == "" || epoch == "" {
		return "", "", "Missing parameters"
	}
	if _, err := uuid.Parse(epoch); err != nil {
		return "", "", "Invalid epoch"
	}
	return testName, epoch, ""
}

func toPlayer(p PlayerRequest, _ int) *domain.Player {
	return &domain.Player{
		ID:          p.ID,
		Roles:       p.Roles,
		MMR:         *p.MMR,
		WaitingTime: *p.WaitingTime,
	}
}
