package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dom/studio-api/internal/api"
	"github.com/dom/studio-api/internal/config"
	"github.com/dom/studio-api/internal/media"
	"github.com/dom/studio-api/internal/repository"
	repoPostgres "github.com/dom/studio-api/internal/repository/postgres"
	"github.com/dom/studio-api/internal/service"
	"github.com/dom/studio-api/internal/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated connection to a throwaway PostgreSQL container
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts postgres:15 in a container, migrates every model and
// terminates the container when the test ends
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	ready := wait.ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(45 * time.Second)

	container, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("test_studio"),
		tcPostgres.WithUsername("studio"),
		tcPostgres.WithPassword("studio"),
		testcontainers.WithWaitStrategy(ready),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("%v", err)
	}

	return &TestDB{Container: container, DB: db, DSN: dsn}
}

// Truncate empties every migrated table so subtests can share one container
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := make([]string, 0, len(repoPostgres.Models))
	for _, model := range repoPostgres.Models {
		stmt := &gorm.Statement{DB: tdb.DB}
		if err := stmt.Parse(model); err != nil {
			t.Fatalf("parse model %T: %v", model, err)
		}
		tables = append(tables, stmt.Schema.Table)
	}

	if err := tdb.DB.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpiration:      time.Hour,
		UploadDir:          "",
		UploadURLPrefix:    "/uploads",
		MaxUploadMB:        5,
		ThumbnailSize:      64,
		CORSAllowedOrigins: []string{"*"},
		LogLevel:           "error",
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Tokens   *token.Service
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies. Uploads
// go to a per-test temp dir.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()
	cfg.UploadDir = t.TempDir()

	repos := repoPostgres.NewRepositories(testDB.DB)

	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}

	store, err := media.NewStore(cfg.UploadDir, cfg.UploadURLPrefix, media.NewThumbnailer(cfg.ThumbnailSize))
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}

	services := service.NewServices(repos, tokens, store)
	router := api.NewRouter(services, cfg, prometheus.NewRegistry())

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Tokens:   tokens,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api%s", ts.Server.URL, path)
}
