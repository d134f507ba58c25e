package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/dom/league-matchmaker/internal/repository/filesystem"
	"github.com/dom/league-matchmaker/internal/repository/postgres"
	"github.com/dom/league-matchmaker/internal/service"
	"github.com/rs/zerolog"
)

const defaultEpoch = "00000000-0000-0000-0000-000000000000"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()

	// Global settings
	apiURL := "http://localhost:8000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "run":
		err = runCmd(ctx, log, apiURL, args)
	case "seed":
		err = seedCmd(ctx, log, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("simulator failed")
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Matchmaking Simulator - Development driver for the matchmaking server

USAGE:
  simulator <command> [options]

COMMANDS:
  run       Replay a test: fetch waiting users, create a match, report it, follow the next epoch
  seed      Load a fixture directory into postgres
  help      Show this help message

ENVIRONMENT:
  API_URL       Matchmaking server URL (default: http://localhost:8000)
  JWT_SECRET    Signs a service token when the server requires one
  DATABASE_URL  Postgres connection for the seed command

EXAMPLES:
  # Replay test_0 from the first epoch until the schedule ends
  simulator run --test=test_0

  # Stop after three epochs
  simulator run --test=test_0 --max-epochs=3

  # Copy ./fixtures into postgres
  simulator seed --dir=fixtures`)
}

func runCmd(ctx context.Context, log zerolog.Logger, apiURL string, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	testName := fs.String("test", "test_0", "Test name to replay")
	epoch := fs.String("epoch", defaultEpoch, "Epoch to start from")
	maxEpochs := fs.Int("max-epochs", 0, "Stop after this many epochs (0 = until the schedule ends)")
	fs.Parse(args)

	token, err := serviceToken()
	if err != nil {
		return err
	}
	client := NewAPIClient(apiURL, token)

	current := *epoch
	for played := 0; *maxEpochs == 0 || played < *maxEpochs; played++ {
		users, err := client.GetWaitingUsers(ctx, *testName, current)
		if err != nil {
			return err
		}
		log.Info().Str("epoch", current).Int("users", len(users)).Msg("GET /matchmaking/users")

		if len(users) == 0 {
			log.Warn().Str("epoch", current).Msg("nobody waiting, stopping")
			return nil
		}

		match, err := client.CreateMatch(ctx, *testName, current, users)
		if err != nil {
			return err
		}
		logMatch(log, match)

		next, err := client.ReportMatch(ctx, *testName, current, match)
		if err != nil {
			return err
		}
		if next == nil {
			log.Info().Str("test_name", *testName).Int("epochs", played+1).Msg("schedule finished")
			return nil
		}
		current = *next
	}

	log.Info().Int("epochs", *maxEpochs).Msg("epoch limit reached")
	return nil
}

func logMatch(log zerolog.Logger, match *domain.MatchResult) {
	for _, team := range match.Match {
		event := log.Info().Str("side", string(team.Side)).Int("players", len(team.User))
		for _, a := range team.User {
			event = event.Str(a.CurrentRole.String(), fmt.Sprintf("%s (%.0f)", a.ID, a.MMR))
		}
		event.Msg("POST /matchmaking/create_match")
	}
}

func seedCmd(ctx context.Context, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dir := fs.String("dir", "fixtures", "Fixture directory to load")
	only := fs.String("test", "", "Only load this test")
	fs.Parse(args)

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	db, err := postgres.NewConnection(databaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	store := postgres.NewFixtureRepository(db)
	source := filesystem.NewFixtureRepository(*dir)

	tests := []string{*only}
	if *only == "" {
		if tests, err = source.ListTests(ctx); err != nil {
			return err
		}
	}

	for _, testName := range tests {
		fixtures, err := source.LoadTest(ctx, testName)
		if err != nil {
			return fmt.Errorf("load %s: %w", testName, err)
		}
		for _, fixture := range fixtures {
			if err := store.Upsert(ctx, fixture); err != nil {
				return fmt.Errorf("store %s/%s: %w", testName, fixture.Epoch, err)
			}
		}
		log.Info().Str("test_name", testName).Int("epochs", len(fixtures)).Msg("seeded")
	}
	return nil
}

// serviceToken signs a short lived token when JWT_SECRET is set
func serviceToken() (string, error) {
	auth := service.NewAuthService(os.Getenv("JWT_SECRET"))
	if !auth.Enabled() {
		return "", nil
	}
	return auth.IssueToken("simulator", time.Hour)
}
