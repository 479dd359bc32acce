// Package wire provides dependency injection for the roster application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"

	cliadapter "github.com/example/roster/internal/adapters/cli"
	"github.com/example/roster/internal/adapters/sqlite"
	"github.com/example/roster/internal/app"
	"github.com/example/roster/internal/config"
	"github.com/example/roster/internal/core/roster"
	"github.com/example/roster/internal/db"
	"github.com/example/roster/internal/ports/primary"
)

var (
	cfg           *config.Config
	logger        *slog.Logger
	sortOptions   []roster.Option
	rosterService primary.RosterService
	configOnce    sync.Once
	once          sync.Once
)

// Config returns the effective configuration for the working directory.
func Config() *config.Config {
	configOnce.Do(initConfig)
	return cfg
}

// Logger returns the shared structured logger.
func Logger() *slog.Logger {
	configOnce.Do(initConfig)
	return logger
}

// SortOptions returns the configured comparer and rank policy.
func SortOptions() []roster.Option {
	configOnce.Do(initConfig)
	return sortOptions
}

// RosterService returns the singleton RosterService instance.
func RosterService() primary.RosterService {
	once.Do(initServices)
	return rosterService
}

// initConfig loads configuration and builds the logger. It opens no
// database, so offline commands can use it.
func initConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	cfg, err = config.Load(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger = NewLogger(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	sortOptions, err = cfg.SortOptions()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	configOnce.Do(initConfig)

	fallback, err := cfg.FallbackTable()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if cfg.DBPath != "" {
		db.SetPath(cfg.DBPath)
	}
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if path, err := db.GetDBPath(); err == nil {
		logger.Debug("database ready", "path", path)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	networkRepo := sqlite.NewNetworkRepository(database)
	participantRepo := sqlite.NewParticipantRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(database)

	// Create services (primary ports implementation)
	rosterService = app.NewRosterService(networkRepo, participantRepo, logWriter, fallback, logger, sortOptions...)
}

// RosterAdapter returns a new RosterAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func RosterAdapter() *cliadapter.RosterAdapter {
	return RosterAdapterWithOutput(os.Stdout)
}

// RosterAdapterWithOutput returns a new RosterAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func RosterAdapterWithOutput(out io.Writer) *cliadapter.RosterAdapter {
	once.Do(initServices)
	return cliadapter.NewRosterAdapter(rosterService, out)
}

// OfflineRosterAdapter returns an adapter for commands that never reach the
// RosterService, such as sorting fixture files.
func OfflineRosterAdapter(out io.Writer) *cliadapter.RosterAdapter {
	return cliadapter.NewRosterAdapter(nil, out)
}

// NewLogger builds a text logger at the named level (debug, info, warn,
// error). Unknown names fall back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
