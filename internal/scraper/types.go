package scraper

import "context"

// Source names for the supported review platforms
const (
	SourceTrustpilot = "Trustpilot"
	SourceTrustindex = "Trustindex"
)

// Review represents a single normalized customer review. The ID is only used
// for deduplication within a run and is never exported.
type Review struct {
	ID                 string `csv:"-" json:"-"`
	Author             string `csv:"author" json:"author"`
	Title              string `csv:"title" json:"title,omitempty"`
	Body               string `csv:"body" json:"body"`
	Rating             int    `csv:"rating" json:"rating"`
	PublishedAt        string `csv:"date_published" json:"date_published"`
	ExperiencedAt      string `csv:"date_experience" json:"date_experience,omitempty"`
	Language           string `csv:"language" json:"language,omitempty"`
	Likes              int    `csv:"likes" json:"likes"`
	CountryCode        string `csv:"consumer_country" json:"consumer_country,omitempty"`
	ReviewerReviews    int    `csv:"consumer_reviews_count" json:"consumer_reviews_count,omitempty"`
	Verified           bool   `csv:"is_verified" json:"is_verified"`
	VerificationSource string `csv:"verification_source" json:"verification_source,omitempty"`
	SourcePlatform     string `csv:"source_platform" json:"source_platform,omitempty"`
}

// Scraper interface defines the contract for all review scraper implementations
type Scraper interface {
	// FetchReviews retrieves all reviews from a source, deduplicated by id
	FetchReviews(ctx context.Context) ([]Review, error)

	// GetName returns the scraper's name for logging and identification
	GetName() string

	// GetSource returns the review platform name for the scraper
	GetSource() string
}
