package exporter

import (
	"github.com/xuri/excelize/v2"

	"airline-review-worker/internal/scraper"
	"airline-review-worker/logger"
	serrors "airline-review-worker/pkg/errors"
)

const sheetName = "Reviews"

// XLSXExporter writes reviews to an Excel workbook with a single "Reviews"
// sheet
type XLSXExporter struct {
	Path string
}

// NewXLSXExporter creates a new XLSX exporter
func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{Path: path}
}

// Export writes the reviews to the configured path
func (e *XLSXExporter) Export(reviews []scraper.Review) error {
	log := logger.ForExporter(e.Name())

	if len(reviews) == 0 {
		log.Warn().Str("path", e.Path).Msg("No reviews to write, skipping file")
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return serrors.NewExport(e.Name(), "failed to create sheet", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return serrors.NewExport(e.Name(), "failed to write header", err)
	}

	for i, review := range reviews {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return serrors.NewExport(e.Name(), "failed to compute cell name", err)
		}
		r := row(review)
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return serrors.NewExport(e.Name(), "failed to write row", err)
		}
	}

	if err := f.SaveAs(e.Path); err != nil {
		return serrors.NewExport(e.Name(), "failed to save "+e.Path, err)
	}

	log.Info().Int("reviews", len(reviews)).Str("path", e.Path).Msg("Wrote reviews")
	return nil
}

// Name returns the output format name
func (e *XLSXExporter) Name() string {
	return "xlsx"
}
