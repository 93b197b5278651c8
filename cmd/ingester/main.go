package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rickgao/coin-ingest/internal/api"
	"github.com/rickgao/coin-ingest/internal/catalog"
	"github.com/rickgao/coin-ingest/internal/config"
	"github.com/rickgao/coin-ingest/internal/database"
	"github.com/rickgao/coin-ingest/internal/ingest"
	"github.com/rickgao/coin-ingest/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	// .env must be loaded before config so TIMESCALE_SERVICE_URL is visible
	if err := config.LoadDotenv(); err != nil {
		slog.Error("failed to load dotenv", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting ingester",
		"version", version.String(),
		"config", *configPath,
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("ingester failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingester stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database")
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return startupErr(ctx, logger, err)
	}
	defer pool.Close()

	conn := pool.Config().ConnConfig
	logger.Info("database connected",
		"host", conn.Host,
		"port", conn.Port,
		"database", conn.Database,
	)

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return startupErr(ctx, logger, err)
	}
	logger.Info("schema ready")

	cat := catalog.FromConfig(cfg.Assets)
	actor, err := catalog.Seed(ctx, pool, cfg.Ingest.ActorName, cat)
	if err != nil {
		return startupErr(ctx, logger, err)
	}
	logger.Info("reference data seeded",
		"actor", actor.Name,
		"actor_id", actor.ID,
		"assets", cat.Len(),
	)

	client := api.NewClient(
		cfg.API.BaseURL,
		api.WithAPIKey(api.Plan(cfg.API.Plan), cfg.API.APIKey),
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
	)

	ingestCfg := ingest.ConfigFrom(cfg)
	cycle := ingest.NewCycle(ingestCfg, pool, client, cat, actor.ID, logger)

	logger.Info("starting ingestion loop",
		"interval", ingestCfg.Interval,
		"currency", ingestCfg.Currency,
		"assets", strings.Join(cat.SourceIDs(), ","),
	)
	return ingest.NewDriver(ingestCfg, cycle, logger).Run(ctx)
}

// startupErr drops a bootstrap error caused by a shutdown signal, so an
// interrupted start exits 0 like an interrupted loop.
func startupErr(ctx context.Context, logger *slog.Logger, err error) error {
	if ctx.Err() != nil {
		logger.Info("shutdown during startup", "error", err)
		return nil
	}
	return err
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	// Validate has already rejected unknown levels
	_ = level.UnmarshalText([]byte(cfg.Level))

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
