package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/league-matchmaker/internal/api"
	"github.com/dom/league-matchmaker/internal/config"
	"github.com/dom/league-matchmaker/internal/domain"
	appLogger "github.com/dom/league-matchmaker/internal/logger"
	"github.com/dom/league-matchmaker/internal/metrics"
	"github.com/dom/league-matchmaker/internal/repository"
	repoPostgres "github.com/dom/league-matchmaker/internal/repository/postgres"
	"github.com/dom/league-matchmaker/internal/service"
	"github.com/dom/league-matchmaker/internal/websocket"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a migrated connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_matchmaking"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears the fixture table for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	if err := tdb.DB.Exec("TRUNCATE TABLE fixture_epochs").Error; err != nil {
		t.Logf("warning: failed to truncate fixture_epochs: %v", err)
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:          "0", // Random port
		Environment:   "test",
		LogLevel:      "disabled",
		FixtureSource: config.FixtureSourceDir,
		FixtureDir:    "fixtures",
		RoleOrderSeed: 1,
	}
}

// TestServer holds all components for HTTP testing. Fixtures live in memory.
type TestServer struct {
	Server   *httptest.Server
	Fixtures *MemoryFixtureRepository
	Services *service.Services
	Hub      *websocket.Hub
	Metrics  *metrics.Metrics
	Config   *config.Config
}

// NewTestServer creates a test server. Options adjust the config before wiring.
func NewTestServer(t *testing.T, opts ...func(*config.Config)) *TestServer {
	t.Helper()

	cfg := TestConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	fixtures := NewMemoryFixtureRepository()
	repos := &repository.Repositories{Fixture: fixtures}
	log := appLogger.NewWithWriter(io.Discard, cfg.LogLevel)

	hub := websocket.NewHub(log)
	go hub.Run()

	m := metrics.New()
	services := service.NewServices(repos, cfg, m, hub)
	// Fixed order keeps handler responses deterministic
	services.Matchmaking = service.NewMatchmakingService(fixtures, service.FixedRoleOrder(domain.AllRoles...), m, hub)
	router := api.NewRouter(services, hub, m, log)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Fixtures: fixtures,
		Services: services,
		Hub:      hub,
		Metrics:  m,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// WithJWTSecret enables token authentication on the test server
func WithJWTSecret(secret string) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.JWTSecret = secret
	}
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// URL returns the full URL for a path under /matchmaking
func (ts *TestServer) URL(path string) string {
	return fmt.Sprintf("%s/matchmaking%s", ts.Server.URL, path)
}

// WebSocketURL returns the match feed URL, with a token when one is given
func (ts *TestServer) WebSocketURL(token string) string {
	wsURL := "ws" + ts.Server.URL[4:] + "/matchmaking/ws"
	if token != "" {
		wsURL += "?token=" + token
	}
	return wsURL
}

// WaitForClients blocks until the hub has n connected clients
func (ts *TestServer) WaitForClients(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return ts.Hub.ClientCount() == n
	}, 2*time.Second, 10*time.Millisecond, "hub never reached %d clients", n)
}
