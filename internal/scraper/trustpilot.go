package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"airline-review-worker/config"
	"airline-review-worker/helpers"
	"airline-review-worker/logger"
	serrors "airline-review-worker/pkg/errors"
	"airline-review-worker/services/cache"
)

// trustpilotPageCap bounds the page loop when the page data does not report
// a total page count and no user limit is set.
const trustpilotPageCap = 1000

// TrustpilotScraper extracts reviews from Trustpilot's server-rendered pages.
// Each page embeds a __NEXT_DATA__ JSON payload carrying the reviews and the
// pagination metadata; the scraper walks ?page=N until the reported total.
type TrustpilotScraper struct {
	BaseScraper
	MaxPages int
	MinWait  time.Duration
	MaxWait  time.Duration

	fetchFunc func(pageURL string) (io.Reader, error)
	sleepFunc func(d time.Duration)
}

// nextData mirrors the parts of Trustpilot's __NEXT_DATA__ payload we consume
type nextData struct {
	Props struct {
		PageProps struct {
			Reviews []trustpilotReview `json:"reviews"`
			Filters struct {
				Pagination struct {
					TotalPages int `json:"totalPages"`
				} `json:"pagination"`
			} `json:"filters"`
		} `json:"pageProps"`
	} `json:"props"`
}

type trustpilotReview struct {
	ID       string `json:"id"`
	Consumer struct {
		DisplayName     string `json:"displayName"`
		NumberOfReviews int    `json:"numberOfReviews"`
		CountryCode     string `json:"countryCode"`
	} `json:"consumer"`
	Dates struct {
		PublishedDate   string `json:"publishedDate"`
		ExperiencedDate string `json:"experiencedDate"`
	} `json:"dates"`
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Language string `json:"language"`
	Likes    int    `json:"likes"`
	Labels   struct {
		Verification struct {
			IsVerified       bool   `json:"isVerified"`
			ReviewSourceName string `json:"reviewSourceName"`
		} `json:"verification"`
	} `json:"labels"`
}

// NewTrustpilotScraper creates a new Trustpilot scraper
func NewTrustpilotScraper(cfg config.Config, cacheSvc cache.CacheService) *TrustpilotScraper {
	s := &TrustpilotScraper{
		BaseScraper: BaseScraper{
			Name:      "TrustpilotScraper",
			Source:    SourceTrustpilot,
			URL:       cfg.TrustpilotURL,
			CacheKey:  "trustpilot_rate_limited",
			CacheSvc:  cacheSvc,
			BlockTime: cfg.BlockTime,
		},
		MaxPages:  cfg.TrustpilotMaxPages,
		MinWait:   cfg.MinFetchWait,
		MaxWait:   cfg.MaxFetchWait,
		sleepFunc: time.Sleep,
	}
	s.fetchFunc = s.fetchWithCache
	return s
}

// FetchReviews walks the paginated review listing and returns the unique
// reviews in first-seen order.
func (s *TrustpilotScraper) FetchReviews(ctx context.Context) ([]Review, error) {
	log := logger.ForScraper(s.Name)
	set := newReviewSet()

	page := 1
	totalPages := 0

	for {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("Context cancelled, stopping pagination")
			break
		}

		pageURL := fmt.Sprintf("%s?page=%d", s.URL, page)
		log.Debug().Str("url", pageURL).Msg("Requesting page")

		reader, err := s.fetchFunc(pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Warn().Err(err).Int("page", page).Msg("Page fetch failed, stopping")
			break
		}

		doc, err := s.createDocument(reader)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			log.Warn().Err(err).Int("page", page).Msg("Page parse failed, stopping")
			break
		}

		raw := doc.Find("script#__NEXT_DATA__").First().Text()
		if strings.TrimSpace(raw) == "" {
			log.Warn().Int("page", page).Msg("No __NEXT_DATA__ script tag found, stopping")
			break
		}

		var data nextData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			if page == 1 {
				return nil, serrors.NewParsing(s.Source, "failed to decode __NEXT_DATA__", err)
			}
			log.Warn().Err(err).Int("page", page).Msg("Invalid __NEXT_DATA__ JSON, stopping")
			break
		}

		if page == 1 {
			totalPages = data.Props.PageProps.Filters.Pagination.TotalPages
			if totalPages <= 0 {
				// Pagination metadata missing; fall back to the user limit or the hard cap
				totalPages = s.MaxPages
				if totalPages <= 0 {
					totalPages = trustpilotPageCap
				}
				log.Warn().Int("page_target", totalPages).Msg("Total page count not reported, using fallback target")
			} else {
				if s.MaxPages > 0 && totalPages > s.MaxPages {
					totalPages = s.MaxPages
				}
				log.Info().Int("page_target", totalPages).Msg("Resolved page target")
			}
		}

		reviews := data.Props.PageProps.Reviews
		if len(reviews) == 0 {
			log.Info().Int("page", page).Msg("No reviews on page, assuming end of reviews")
			break
		}

		added := 0
		for _, raw := range reviews {
			if set.Add(s.parseReview(raw)) {
				added++
			}
		}

		log.Info().
			Int("page", page).
			Int("new_reviews", added).
			Int("total_reviews", set.Len()).
			Msg("Extracted page")

		if page >= totalPages {
			break
		}

		page++
		s.sleepFunc(helpers.RandomDelay(s.MinWait, s.MaxWait))
	}

	return set.Reviews(), nil
}

// parseReview maps a raw Trustpilot review object onto the normalized model
func (s *TrustpilotScraper) parseReview(raw trustpilotReview) Review {
	return Review{
		ID:                 raw.ID,
		Author:             raw.Consumer.DisplayName,
		Title:              raw.Title,
		Body:               helpers.HTMLToText(raw.Text),
		Rating:             raw.Rating,
		PublishedAt:        normalizeTimestamp(raw.Dates.PublishedDate),
		ExperiencedAt:      normalizeDate(raw.Dates.ExperiencedDate),
		Language:           raw.Language,
		Likes:              raw.Likes,
		CountryCode:        raw.Consumer.CountryCode,
		ReviewerReviews:    raw.Consumer.NumberOfReviews,
		Verified:           raw.Labels.Verification.IsVerified,
		VerificationSource: raw.Labels.Verification.ReviewSourceName,
	}
}

// normalizeTimestamp converts an ISO-8601 timestamp to "2006-01-02 15:04:05".
// Unparseable values are kept raw.
func normalizeTimestamp(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02 15:04:05")
}

// normalizeDate converts an ISO-8601 timestamp to its date part.
// Unparseable values are kept raw.
func normalizeDate(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}
