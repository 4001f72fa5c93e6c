package scraper

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "airline-review-worker/pkg/errors"
)

type memoryCache struct {
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(key string) ([]byte, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return nil, assert.AnError
}

func (c *memoryCache) Set(key string, value []byte, expiration time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(key string) error {
	delete(c.values, key)
	return nil
}

func newTestBaseScraper(url string, cache *memoryCache) *BaseScraper {
	return &BaseScraper{
		Name:      "TestScraper",
		Source:    "Test",
		URL:       url,
		CacheKey:  "test_rate_limited",
		CacheSvc:  cache,
		BlockTime: time.Minute,
	}
}

func TestFetchWithCacheReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	s := newTestBaseScraper(server.URL, newMemoryCache())

	body, err := s.fetchWithCache(server.URL)
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ok")
}

func TestFetchWithCacheSetsBlockMarkerOnRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	cache := newMemoryCache()
	s := newTestBaseScraper(server.URL, cache)

	_, err := s.fetchWithCache(server.URL)
	require.Error(t, err)

	var scrapeErr *serrors.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, serrors.ErrorTypeRateLimit, scrapeErr.Type)

	_, ok := cache.values["test_rate_limited"]
	assert.True(t, ok, "A block marker should be stored")
}

func TestFetchWithCacheSkipsBlockedSource(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	cache := newMemoryCache()
	cache.Set("test_rate_limited", []byte("60"), time.Minute)
	s := newTestBaseScraper(server.URL, cache)

	_, err := s.fetchWithCache(server.URL)
	require.Error(t, err)

	var scrapeErr *serrors.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, serrors.ErrorTypeRateLimit, scrapeErr.Type)
	assert.Equal(t, 0, requests, "Blocked sources must not be fetched")
}

func TestFetchWithCacheWorksWithoutCacheService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	s := &BaseScraper{Name: "TestScraper", Source: "Test", URL: server.URL}

	_, err := s.fetchWithCache(server.URL)
	assert.NoError(t, err)
}

func TestFetchWithCacheNetworkError(t *testing.T) {
	s := newTestBaseScraper("http://127.0.0.1:1", newMemoryCache())

	_, err := s.fetchWithCache("http://127.0.0.1:1")
	require.Error(t, err)

	var scrapeErr *serrors.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, serrors.ErrorTypeNetwork, scrapeErr.Type)
	assert.True(t, scrapeErr.IsRetryable())
}
