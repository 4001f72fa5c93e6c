package exporter

import (
	"os"

	"github.com/gocarina/gocsv"

	"airline-review-worker/internal/scraper"
	"airline-review-worker/logger"
	serrors "airline-review-worker/pkg/errors"
)

// CSVExporter writes reviews to a UTF-8 CSV file with a header row
type CSVExporter struct {
	Path string
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{Path: path}
}

// Export writes the reviews to the configured path. Column order and names
// come from the Review struct's csv tags.
func (e *CSVExporter) Export(reviews []scraper.Review) error {
	log := logger.ForExporter(e.Name())

	if len(reviews) == 0 {
		log.Warn().Str("path", e.Path).Msg("No reviews to write, skipping file")
		return nil
	}

	f, err := os.Create(e.Path)
	if err != nil {
		return serrors.NewExport(e.Name(), "failed to create file "+e.Path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&reviews, f); err != nil {
		return serrors.NewExport(e.Name(), "failed to write "+e.Path, err)
	}

	log.Info().Int("reviews", len(reviews)).Str("path", e.Path).Msg("Wrote reviews")
	return nil
}

// Name returns the output format name
func (e *CSVExporter) Name() string {
	return "csv"
}
