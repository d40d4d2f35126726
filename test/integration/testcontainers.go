package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rocketresume/rocket/pkg/config"
	"github.com/rocketresume/rocket/pkg/persona"
	"github.com/rocketresume/rocket/pkg/server"
	"github.com/rocketresume/rocket/pkg/server/endpoints"
	gormstore "github.com/rocketresume/rocket/pkg/server/store/gorm"
	"github.com/rocketresume/rocket/pkg/storage"
	"github.com/rocketresume/rocket/pkg/token"
)

// testTokenSecret signs session tokens for in-process and binary test
// servers alike, so steps can mint or verify tokens either way.
const testTokenSecret = "integration-test-secret-0123456789"

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	RawDB         *sql.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string
	StorageDir    string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server
}

// NewTestContext creates a new test context with a PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set ROCKET_BINARY to the path of the rocketctl binary
//   - Inline mode: Set ROCKET_INLINE=1 to run the server in-process (no binary needed)
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	inlineMode := os.Getenv("ROCKET_INLINE") == "1"
	binaryPath := os.Getenv("ROCKET_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either ROCKET_BINARY or ROCKET_INLINE=1 is required.\n\nBinary mode:\n  go build -o rocketctl ./cmd/rocketctl\n  INTEGRATION_TEST=1 ROCKET_BINARY=$(pwd)/rocketctl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 ROCKET_INLINE=1 go test -v ./test/integration/...")
	}

	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("ROCKET_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rocket_test"),
		tcpostgres.WithUsername("rocket"),
		tcpostgres.WithPassword("rocket"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// Connection string for the host side, not the container network.
	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://rocket:rocket@%s:%s/rocket_test?sslmode=disable", host, port.Port())

	// GORM connection for test setup and assertions.
	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rawDB, err := db.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	if err := runMigrations(migrationsDir, connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedPersonas(db); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to seed personas: %w", err)
	}

	storageDir, err := os.MkdirTemp("", "rocket-integration-storage-")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	var serverURL string
	var serverProcess *exec.Cmd
	var inlineServer *server.Server
	var cancel context.CancelFunc

	if inlineMode {
		inlineServer, serverURL, cancel, err = startInlineServer(connStr, storageDir, db)
	} else {
		serverProcess, serverURL, cancel, err = startBinary(binaryPath, connStr, storageDir)
	}
	if err != nil {
		_ = os.RemoveAll(storageDir)
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to start server: %w", err)
	}

	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		cancel()
		if serverProcess != nil && serverProcess.Process != nil {
			_ = serverProcess.Process.Kill()
		}
		_ = os.RemoveAll(storageDir)
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            db,
		RawDB:         rawDB,
		Container:     pgContainer,
		ServerURL:     serverURL,
		DatabaseURL:   connStr,
		StorageDir:    storageDir,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		Cancel:        cancel,
		ServerProcess: serverProcess,
		InlineServer:  inlineServer,
	}, nil
}

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(dbURL, storageDir string, db *gorm.DB) (*server.Server, string, context.CancelFunc, error) {
	_, cancel := context.WithCancel(context.Background())

	// Environment feeds config.Load the same way the binary boots, so
	// inline servers keep the production defaults.
	_ = os.Setenv("DATABASE_URL", dbURL)
	_ = os.Setenv("ROCKET_TOKEN_SECRET", testTokenSecret)
	_ = os.Setenv("ROCKET_STORAGE_DIR", storageDir)

	cfg, err := config.Load()
	if err != nil {
		cancel()
		return nil, "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	backend, err := storage.NewLocal(storageDir)
	if err != nil {
		cancel()
		return nil, "", nil, fmt.Errorf("failed to create storage backend: %w", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		cancel()
		return nil, "", nil, fmt.Errorf("failed to create listener: %w", err)
	}
	addr := listener.Addr().(*net.TCPAddr)

	tokens, err := token.NewIssuer(cfg.TokenSecret, cfg.TokenTTL())
	if err != nil {
		cancel()
		return nil, "", nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	s := server.NewServer(cfg, db, tokens, "127.0.0.1", fmt.Sprintf("%d", addr.Port))
	s.UseStorage(backend)
	endpoints.RegisterAll(s)

	go func() {
		_ = s.StartWithListener(listener)
	}()

	return s, fmt.Sprintf("http://127.0.0.1:%d", addr.Port), cancel, nil
}

// startBinary starts the rocketctl server binary
func startBinary(binaryPath, dbURL, storageDir string) (*exec.Cmd, string, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	serverPort := "18080"
	serverURL := "http://127.0.0.1:" + serverPort

	// --no-migrate because the harness already migrated the database.
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", serverPort)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"ROCKET_TOKEN_SECRET="+testTokenSecret,
		"ROCKET_STORAGE_DIR="+storageDir,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, "", nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, serverURL, cancel, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.StorageDir != "" {
		_ = os.RemoveAll(tc.StorageDir)
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// seedPersonas installs the built-in persona catalog, which
// conversation sessions reference by foreign key. Mirrors what
// `rocketctl seed` does on a fresh database.
func seedPersonas(db *gorm.DB) error {
	personas := gormstore.NewPersonasStore(db)
	for _, p := range persona.All() {
		profile, err := p.Profile()
		if err != nil {
			return err
		}
		if err := personas.UpsertPersona(profile); err != nil {
			return err
		}
	}
	return nil
}

// runMigrations applies every up migration against the test database
func runMigrations(migrationsDir, dbURL string) error {
	m, err := migrate.New("file://"+migrationsDir, dbURL)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
