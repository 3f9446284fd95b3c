package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/timmy/leadscout/internal/config"
	"github.com/timmy/leadscout/internal/logger"
	"github.com/timmy/leadscout/internal/metrics"
	"github.com/timmy/leadscout/internal/places"
	"github.com/timmy/leadscout/internal/repository"
	"github.com/timmy/leadscout/internal/service"
	"github.com/timmy/leadscout/internal/whois"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	city := flag.String("city", "", "Override city from config")
	skipExport := flag.Bool("no-export", false, "Skip the CSV export after the run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.GetDefault().WithError(err).Fatal("Failed to load config")
	}

	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "leadscout-scrape",
		LogFile:     cfg.Log.File,
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	if *city != "" {
		cfg.Scrape.City = *city
	}
	// Configuration problems are the only thing that aborts a whole run.
	if err := cfg.ValidateForScrape(); err != nil {
		appLogger.WithError(err).Fatal("Invalid configuration")
	}

	appLogger.WithFields(logger.Fields{
		"city":  cfg.Scrape.City,
		"areas": len(cfg.Scrape.Areas),
	}).Info("Starting scrape run")

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	areaRepo := repository.NewAreaRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	m := metrics.New()
	client := places.NewClient(&places.ClientConfig{
		APIKey:         cfg.Google.APIKey,
		BaseURL:        cfg.Google.BaseURL,
		RequestTimeout: cfg.Google.RequestTimeout,
		RatePerSecond:  cfg.Google.RatePerSecond,
		RateBurst:      cfg.Google.RateBurst,
		Metrics:        m,
	})

	collector := service.NewCollector(client, cfg.Scrape.GridSteps, cfg.Scrape.MaxPages, m)
	qualifier := service.NewQualifier(whois.NewClient(0))
	scraper := service.NewScraper(areaRepo, leadRepo, collector, client, qualifier, m, service.ScrapeConfig{
		ReviewsThreshold: cfg.Scrape.ReviewsThreshold,
		PerAreaLimit:     cfg.Scrape.PerAreaLimit,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLogger.WithField("signal", sig.String()).Warn("Shutting down")
		cancel()
	}()

	runID := uuid.New().String()
	ctx = logger.SetRunID(ctx, runID)
	ctx = logger.SetComponent(ctx, "scrape")

	stats, err := scraper.Run(ctx, cfg.Scrape.City, cfg.Scrape.Areas)
	if err != nil {
		appLogger.WithError(err).Fatal("Scrape run aborted")
	}

	appLogger.WithFields(logger.Fields{
		"run_id":          runID,
		"areas_processed": stats.AreasProcessed,
		"areas_skipped":   stats.AreasSkipped,
		"areas_failed":    stats.AreasFailed,
		"leads_qualified": stats.LeadsQualified,
	}).Info("Scrape run finished")

	if !*skipExport {
		exporter := service.NewExporter(leadRepo, cfg.Export.Dir)
		path, err := exporter.ExportCity(ctx, cfg.Scrape.City)
		if err != nil {
			appLogger.WithError(err).Error("CSV export failed")
			os.Exit(1)
		}
		appLogger.WithField("path", path).Info("CSV export written")
	}
}
