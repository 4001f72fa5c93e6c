package scraper

import (
	"airline-review-worker/config"
	"airline-review-worker/services/cache"
)

// CreateScrapers creates all the review scrapers based on the configuration
func CreateScrapers(cfg config.Config, cacheSvc cache.CacheService) []Scraper {
	return []Scraper{
		NewTrustpilotScraper(cfg, cacheSvc),
		NewTrustindexScraper(cfg, cacheSvc),
	}
}
