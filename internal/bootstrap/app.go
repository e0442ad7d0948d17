// Package bootstrap handles application initialization and lifecycle
// management for the showcase-search service.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/goodphonefoundation/thecloudsucks/internal/api"
	"github.com/goodphonefoundation/thecloudsucks/internal/config"
	"github.com/goodphonefoundation/thecloudsucks/internal/directus"
	"github.com/goodphonefoundation/thecloudsucks/internal/discourse"
	"github.com/goodphonefoundation/thecloudsucks/internal/logger"
	"github.com/goodphonefoundation/thecloudsucks/internal/search"
	"github.com/goodphonefoundation/thecloudsucks/internal/service"
	"github.com/goodphonefoundation/thecloudsucks/internal/sync"
)

const (
	defaultConfigPath = "config.yml"
	forumTimeout      = 15 * time.Second
)

// Start initializes and runs the service until shutdown.
func Start() error {
	// Phase 1: config and logger.
	cfg, err := config.Load(config.GetPath(defaultConfigPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting showcase search service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	// Phase 2: upstream clients.
	engine := search.NewClient(cfg.Typesense.URL, cfg.Typesense.APIKey, cfg.Typesense.ConnectionTimeout)
	cms := directus.NewClient(cfg.Directus.URL, cfg.Directus.Token, cfg.Directus.Timeout)
	forum := discourse.NewClient(cfg.Discourse.URL, cfg.Discourse.APIKey, cfg.Discourse.APIUsername, forumTimeout)
	log.Info("Upstream clients initialized",
		logger.String("typesense", cfg.Typesense.URL),
		logger.String("directus", cfg.Directus.URL),
	)

	// Phase 3: sync pipeline.
	publisher := search.NewPublisher(engine, log)
	runner := sync.NewRunner(cms, publisher, log)

	if cfg.Sync.Enabled {
		scheduler, schedErr := sync.NewScheduler(runner, cfg.Sync.Schedule, log)
		if schedErr != nil {
			return fmt.Errorf("failed to create sync scheduler: %w", schedErr)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("Scheduled sync enabled", logger.String("schedule", cfg.Sync.Schedule))
	} else {
		log.Info("Scheduled sync disabled; rebuilds run via POST /api/v1/sync only")
	}

	// Phase 4: HTTP server.
	searchSvc := service.NewSearchService(engine, cfg.Search.DefaultPageSize, cfg.Search.GlobalDefaultLimit, log)
	webhookSvc := service.NewWebhookService(cms, forum, log)
	handler := api.NewHandler(searchSvc, webhookSvc, runner, cfg.Search.MaxPageSize, log)
	server := api.NewServer(handler, cfg, log)

	if runErr := server.RunWithGracefulShutdown(context.Background()); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Showcase search service stopped")
	return nil
}
