package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "https://www.trustpilot.com/review/www.turkishairlines.com", config.TrustpilotURL)
	assert.Equal(t, 0, config.TrustpilotMaxPages)
	assert.Equal(t, 10, config.TrustindexMaxLoads)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	assert.Equal(t, 500*time.Second, config.BlockTime)
	assert.Equal(t, 1000*time.Millisecond, config.MinFetchWait)
	assert.Equal(t, 2500*time.Millisecond, config.MaxFetchWait)
	assert.True(t, config.Headless)

	// Test with environment variables
	os.Setenv("TRUSTPILOT_URL", "https://example.com/review/airline")
	os.Setenv("TRUSTPILOT_MAX_PAGES", "3")
	os.Setenv("TRUSTINDEX_MAX_LOADS", "5")
	os.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	os.Setenv("CHROME_HEADLESS", "false")
	os.Setenv("OUTPUT_DIR", "/tmp/reviews")

	config = LoadConfig()
	assert.Equal(t, "https://example.com/review/airline", config.TrustpilotURL)
	assert.Equal(t, 3, config.TrustpilotMaxPages)
	assert.Equal(t, 5, config.TrustindexMaxLoads)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.False(t, config.Headless)
	assert.Equal(t, "/tmp/reviews", config.OutputDir)

	// Clean up
	os.Unsetenv("TRUSTPILOT_URL")
	os.Unsetenv("TRUSTPILOT_MAX_PAGES")
	os.Unsetenv("TRUSTINDEX_MAX_LOADS")
	os.Unsetenv("MEMCACHE_ADDR")
	os.Unsetenv("CHROME_HEADLESS")
	os.Unsetenv("OUTPUT_DIR")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	invalid := config
	invalid.TrustpilotURL = ""
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.TrustindexURL = ""
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.TrustpilotMaxPages = -1
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.TrustindexMaxLoads = -1
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.MinFetchWait = 2 * time.Second
	invalid.MaxFetchWait = 1 * time.Second
	assert.Error(t, invalid.Validate())

	invalid = config
	invalid.OutputDir = ""
	assert.Error(t, invalid.Validate())
}

func TestOutputPath(t *testing.T) {
	config := Config{OutputDir: "/data/out"}
	assert.Equal(t, "/data/out/reviews.csv", config.OutputPath("reviews.csv"))
}
