package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"airline-review-worker/config"
	"airline-review-worker/internal/scraper"
	"airline-review-worker/logger"
	"airline-review-worker/services/cache"
	"airline-review-worker/services/exporter"
	"airline-review-worker/services/runner"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("output_dir", cfg.OutputDir).
		Msg("Starting application")

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize cache service; scrapers fall back to uncached fetching
	// when no memcache address is configured
	var cacheService cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheService = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Infof("Using Memcache at %s for rate limit markers", cfg.MemcacheAddr)
	} else {
		log.Warn().Msg("No memcache address configured, rate limit markers disabled")
	}

	// Create scrapers
	scrapers := scraper.CreateScrapers(cfg, cacheService)
	if len(scrapers) == 0 {
		log.Fatal().Msg("No scrapers were created")
	}

	log.Info().
		Int("scraper_count", len(scrapers)).
		Msg("Created scrapers")

	jobs := buildJobs(cfg, scrapers)

	// Run all jobs in a goroutine
	r := runner.NewRunner(jobs)
	runDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting review scrape run")
		runDone <- r.Run(ctx)
	}()

	// Wait for shutdown signal or run completion
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-runDone
	case err := <-runDone:
		if err != nil {
			log.Error().Err(err).Msg("Run finished with errors")
			os.Exit(1)
		}
		log.Info().Msg("Run finished")
	}
}

// buildJobs pairs each scraper with its CSV and XLSX outputs
func buildJobs(cfg config.Config, scrapers []scraper.Scraper) []runner.Job {
	jobs := make([]runner.Job, 0, len(scrapers))
	for _, s := range scrapers {
		var csvPath, xlsxPath string
		switch s.GetSource() {
		case scraper.SourceTrustpilot:
			csvPath = cfg.OutputPath(cfg.TrustpilotCSV)
			xlsxPath = cfg.OutputPath(cfg.TrustpilotXLSX)
		case scraper.SourceTrustindex:
			csvPath = cfg.OutputPath(cfg.TrustindexCSV)
			xlsxPath = cfg.OutputPath(cfg.TrustindexXLSX)
		default:
			continue
		}
		jobs = append(jobs, runner.Job{
			Scraper: s,
			Exporters: []exporter.Exporter{
				exporter.NewCSVExporter(csvPath),
				exporter.NewXLSXExporter(xlsxPath),
			},
		})
	}
	return jobs
}
