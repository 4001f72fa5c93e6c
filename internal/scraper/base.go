package scraper

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"airline-review-worker/helpers"
	serrors "airline-review-worker/pkg/errors"
	"airline-review-worker/services/cache"
)

// BaseScraper provides common functionality for all scrapers
type BaseScraper struct {
	Name      string
	Source    string
	URL       string
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
}

// fetchWithCache fetches a URL unless the source is currently blocked by a
// rate-limit marker. A rate-limited response sets the marker so the source is
// left alone for BlockTime.
func (s *BaseScraper) fetchWithCache(pageURL string) (io.Reader, error) {
	if s.CacheSvc != nil && s.CacheKey != "" {
		if _, err := s.CacheSvc.Get(s.CacheKey); err == nil {
			return nil, serrors.NewRateLimit(s.Source, s.BlockTime)
		}
	}

	body, err := helpers.FetchWithRandomHeaders(pageURL)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			if s.CacheSvc != nil && s.CacheKey != "" {
				blockSecs := fmt.Sprintf("%d", int(s.BlockTime/time.Second))
				if setErr := s.CacheSvc.Set(s.CacheKey, []byte(blockSecs), s.BlockTime); setErr != nil {
					return nil, serrors.New(serrors.ErrorTypeRateLimit, s.Source, "failed to set block marker", setErr)
				}
			}
			return nil, serrors.NewRateLimit(s.Source, s.BlockTime)
		}
		return nil, serrors.NewNetwork(s.Source, "fetch failed", err)
	}

	return body, nil
}

// createDocument creates a goquery document from a reader
func (s *BaseScraper) createDocument(reader io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, serrors.NewParsing(s.Source, "failed to parse HTML", err)
	}
	return doc, nil
}

// GetName returns the scraper's name for logging
func (s *BaseScraper) GetName() string {
	return s.Name
}

// GetSource returns the review platform name
func (s *BaseScraper) GetSource() string {
	return s.Source
}
