package exporter

import (
	"airline-review-worker/internal/scraper"
)

// Exporter represents a service for writing extracted reviews to a tabular
// output file
type Exporter interface {
	// Export writes the reviews. An empty slice is a no-op.
	Export(reviews []scraper.Review) error

	// Name returns the output format name for logging
	Name() string
}

// header lists the exported columns in struct order. The review id is
// intentionally absent: it only exists for deduplication.
var header = []interface{}{
	"author",
	"title",
	"body",
	"rating",
	"date_published",
	"date_experience",
	"language",
	"likes",
	"consumer_country",
	"consumer_reviews_count",
	"is_verified",
	"verification_source",
	"source_platform",
}

func row(r scraper.Review) []interface{} {
	return []interface{}{
		r.Author,
		r.Title,
		r.Body,
		r.Rating,
		r.PublishedAt,
		r.ExperiencedAt,
		r.Language,
		r.Likes,
		r.CountryCode,
		r.ReviewerReviews,
		r.Verified,
		r.VerificationSource,
		r.SourcePlatform,
	}
}
