package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/labstack/echo/v4"

	"github.com/interntrack/backend/internal/api"
	"github.com/interntrack/backend/internal/archive"
	"github.com/interntrack/backend/internal/config"
	"github.com/interntrack/backend/internal/ingest"
	"github.com/interntrack/backend/internal/store"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := os.Getenv("INTERNTRACK_CONFIG")
	if configPath == "" {
		configPath = "interntrack.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// A second instance sharing the sqlite file would fight over the
	// single-writer connection; refuse to start instead.
	lock := flock.New(filepath.Join(cfg.Storage.DataDirectory, "interntrack.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		fmt.Printf("Failed to acquire data directory lock: %v\n", err)
		os.Exit(1)
	}
	if !locked {
		fmt.Printf("Another instance is already using %s\n", cfg.Storage.DataDirectory)
		os.Exit(1)
	}
	defer lock.Unlock()

	db, err := store.Open(cfg.DatabasePath())
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	companies := store.NewCompanyStore(db)
	ingestor := ingest.NewIngestor(companies)

	uploads, err := archive.New(filepath.Join(cfg.Storage.DataDirectory, "uploads"))
	if err != nil {
		fmt.Printf("Warning: upload archive disabled: %v\n", err)
	} else {
		ingestor.WithArchive(uploads)
	}
	h := api.NewHandler(companies, ingestor, Version)

	e := echo.New()
	api.SetupMiddleware(e, cfg.Server.AllowOrigins, cfg.Server.BodyLimit, cfg.Server.LogRequests)
	api.RegisterRoutes(e, h)

	s := &http.Server{
		Addr:         cfg.ServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	fmt.Printf("InternTrack backend %s (built %s)\n", Version, BuildTime)
	fmt.Printf("  config:   %s\n", configPath)
	fmt.Printf("  database: %s\n", cfg.DatabasePath())
	fmt.Printf("  listen:   http://%s\n", cfg.ServerAddr())

	e.Logger.Fatal(e.StartServer(s))
}
