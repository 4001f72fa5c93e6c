package runner

import (
	"context"
	"fmt"

	"airline-review-worker/internal/scraper"
	"airline-review-worker/logger"
	"airline-review-worker/services/exporter"
)

// Job pairs a scraper with the exporters that receive its reviews
type Job struct {
	Scraper   scraper.Scraper
	Exporters []exporter.Exporter
}

// Runner executes scrape jobs one after another. Review sites throttle
// aggressively, so jobs never run concurrently.
type Runner struct {
	jobs []Job
}

// NewRunner creates a new runner for the given jobs
func NewRunner(jobs []Job) *Runner {
	return &Runner{jobs: jobs}
}

// Run executes every job in order. A failing job is logged and the remaining
// jobs still run; the returned error reports how many jobs failed.
func (r *Runner) Run(ctx context.Context) error {
	log := logger.ForRunner()

	failed := 0
	total := 0
	for _, job := range r.jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := job.Scraper.GetName()
		log.Info().Str("scraper", name).Msg("Starting scrape job")

		reviews, err := job.Scraper.FetchReviews(ctx)
		if err != nil {
			log.Error().Err(err).Str("scraper", name).Msg("Scrape job failed")
			failed++
			continue
		}
		log.Info().Str("scraper", name).Int("reviews", len(reviews)).Msg("Scrape job finished")
		total += len(reviews)

		exportFailed := false
		for _, exp := range job.Exporters {
			if err := exp.Export(reviews); err != nil {
				log.Error().Err(err).Str("scraper", name).Str("format", exp.Name()).Msg("Export failed")
				exportFailed = true
			}
		}
		if exportFailed {
			failed++
		}
	}

	log.Info().Int("jobs", len(r.jobs)).Int("failed", failed).Int("reviews", total).Msg("All jobs finished")
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(r.jobs))
	}
	return nil
}
