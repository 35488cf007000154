// Command medcheck checks medication, food and complementary medicine
// interactions from the terminal, as an interactive checker or an MCP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/backend"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/metrics"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/searchindex"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/services"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// searchRateLimit caps queries per second sent to the search index.
const searchRateLimit = 10

func main() {
	// A missing .env file is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &application{}
	defer app.close()

	cli.SetVersion(version)
	if err := cli.Execute(ctx, app.build); err != nil {
		app.close()
		os.Exit(1)
	}
}

// application owns the resources opened while building services.
type application struct {
	store *sqlite.Store
}

func (a *application) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		logger.Warn("Closing database failed: %v", err)
	}
	a.store = nil
}

// build wires adapters to core services once global flags are known.
func (a *application) build(_ context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings.Logging.Verbose {
		logger.SetVerbose(true)
	}
	logger.Section("Startup")
	logger.Debug("Config: %s", configStore.Path())

	dataDir := ""
	if opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	logger.Debug("Database: %s", store.Path())

	observer := metrics.NewObserver()

	var (
		interactions driven.InteractionBackend
		auth         driven.AuthBackend
		resources    driven.ResourceClient
		session      *services.SessionService
	)
	if settings.Backend.IsConfigured() {
		client, err := backend.NewClient(settings.Backend.URL,
			backend.WithTimeout(settings.Backend.Timeout),
			backend.WithRateLimit(settings.Backend.RateLimit),
			backend.WithTokenFunc(func(ctx context.Context) (string, error) {
				return session.AccessToken(ctx)
			}),
		)
		if err != nil {
			return nil, err
		}
		interactions, auth, resources = client, client, client
		logger.Debug("Backend: %s", client.BaseURL())
	} else {
		logger.Debug("Backend not configured")
	}
	session = services.NewSessionService(auth, store.SessionStore())

	search := services.NewCandidateSearchService(newCandidateIndex(settings.Search), settings.Search.Timeout)
	search.SetObserver(observer)

	history := services.NewHistoryService(store.HistoryStore())
	panels := services.NewPanelFactory(interactions, settings.Backend.Timeout)
	panels.OnComplete(history.Hook())
	panels.OnComplete(services.ObserverHook(observer))

	return &cli.Services{
		Search:   search,
		Panels:   panels,
		Session:  session,
		Admin:    services.NewAdminService(resources, session),
		History:  history,
		Settings: settingsService,
		Watcher:  configStore,
		Metrics:  observer.Handler(),
		OnLogout: session.OnLogout,
	}, nil
}

// newCandidateIndex returns the cached search index client, or nil when no
// search URL is configured.
func newCandidateIndex(s domain.SearchSettings) driven.CandidateIndex {
	if !s.IsConfigured() {
		logger.Debug("Search index not configured")
		return nil
	}
	client, err := searchindex.NewClient(s.URL, s.APIKey, s.Timeout,
		searchindex.WithRateLimit(searchRateLimit))
	if err != nil {
		logger.Warn("Search index unavailable: %v", err)
		return nil
	}
	return searchindex.NewCached(client, s.CacheSize, s.CacheTTL)
}
