package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Trustpilot configuration
	TrustpilotURL      string
	TrustpilotMaxPages int // 0 means scrape all available pages

	// Trustindex configuration
	TrustindexURL      string
	TrustindexMaxLoads int // maximum number of "More" button clicks

	// Output configuration
	OutputDir      string
	TrustpilotCSV  string
	TrustpilotXLSX string
	TrustindexCSV  string
	TrustindexXLSX string

	// Memcache configuration (empty address disables the block cache)
	MemcacheAddr string

	// Rate limiting
	BlockTime    time.Duration
	MinFetchWait time.Duration
	MaxFetchWait time.Duration

	// Browser configuration
	Headless  bool
	UserAgent string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	maxPages, _ := strconv.Atoi(getEnv("TRUSTPILOT_MAX_PAGES", "0"))
	maxLoads, _ := strconv.Atoi(getEnv("TRUSTINDEX_MAX_LOADS", "10"))
	blockTime, _ := strconv.Atoi(getEnv("BLOCK_TIME_SECONDS", "500"))
	minWait, _ := strconv.Atoi(getEnv("MIN_FETCH_WAIT_MS", "1000"))
	maxWait, _ := strconv.Atoi(getEnv("MAX_FETCH_WAIT_MS", "2500"))
	headless, _ := strconv.ParseBool(getEnv("CHROME_HEADLESS", "true"))

	return Config{
		TrustpilotURL:      getEnv("TRUSTPILOT_URL", "https://www.trustpilot.com/review/www.turkishairlines.com"),
		TrustpilotMaxPages: maxPages,
		TrustindexURL:      getEnv("TRUSTINDEX_URL", "https://www.trustindex.io/reviews/turkish-airline.com"),
		TrustindexMaxLoads: maxLoads,
		OutputDir:          getEnv("OUTPUT_DIR", "."),
		TrustpilotCSV:      getEnv("TRUSTPILOT_CSV", "turkish_airlines_trustpilot_reviews.csv"),
		TrustpilotXLSX:     getEnv("TRUSTPILOT_XLSX", "turkish_airlines_trustpilot_reviews.xlsx"),
		TrustindexCSV:      getEnv("TRUSTINDEX_CSV", "turkish_airlines_reviews.csv"),
		TrustindexXLSX:     getEnv("TRUSTINDEX_XLSX", "turkish_airlines_reviews.xlsx"),
		MemcacheAddr:       getEnv("MEMCACHE_ADDR", "localhost:11211"),
		BlockTime:          time.Duration(blockTime) * time.Second,
		MinFetchWait:       time.Duration(minWait) * time.Millisecond,
		MaxFetchWait:       time.Duration(maxWait) * time.Millisecond,
		Headless:           headless,
		UserAgent: getEnv("SCRAPER_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"),
		Environment: getEnv("REVIEW_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.TrustpilotURL == "" {
		return fmt.Errorf("trustpilot URL must not be empty")
	}
	if c.TrustindexURL == "" {
		return fmt.Errorf("trustindex URL must not be empty")
	}
	if c.TrustpilotMaxPages < 0 {
		return fmt.Errorf("trustpilot max pages must not be negative")
	}
	if c.TrustindexMaxLoads < 0 {
		return fmt.Errorf("trustindex max loads must not be negative")
	}
	if c.MinFetchWait < 0 || c.MaxFetchWait < c.MinFetchWait {
		return fmt.Errorf("fetch wait bounds are invalid: min=%s max=%s", c.MinFetchWait, c.MaxFetchWait)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// OutputPath joins a filename with the configured output directory
func (c *Config) OutputPath(filename string) string {
	return filepath.Join(c.OutputDir, filename)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
