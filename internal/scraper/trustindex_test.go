package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trustindexWidgetHTML = `
<html><body>
<div class="review source-Google" data-id="g-1">
  <div class="ti-name"> Alice </div>
  <div class="ti-date">2025.03.01</div>
  <div class="ti-stars">
    <span class="ti-star f"></span><span class="ti-star f"></span>
    <span class="ti-star f"></span><span class="ti-star f"></span>
    <span class="ti-star e"></span>
  </div>
  <div class="ti-review-content">Friendly crew.<br>On time &amp; clean.</div>
</div>
<div class="review source-Tripadvisor" data-id="t-2">
  <div class="ti-name">Bob</div>
  <div class="ti-date">yesterday</div>
  <div class="ti-stars"><span class="ti-star f"></span></div>
  <div class="ti-review-content">Lost my luggage</div>
</div>
<div class="review">
  <div class="ti-name">No id</div>
</div>
<div class="review source-Google" data-id="g-1">
  <div class="ti-name">Alice duplicate</div>
</div>
</body></html>`

func newTestTrustindexScraper() *TrustindexScraper {
	return &TrustindexScraper{
		BaseScraper: BaseScraper{
			Name:   "TrustindexScraper",
			Source: SourceTrustindex,
			URL:    "https://example.com/reviews/airline.example",
		},
	}
}

func TestCollectReviewsParsesWidgetSnapshot(t *testing.T) {
	s := newTestTrustindexScraper()
	set := newReviewSet()

	added, err := s.collectReviews(trustindexWidgetHTML, set)
	require.NoError(t, err)

	assert.Equal(t, 2, added, "Blocks without an id and duplicates should be skipped")
	reviews := set.Reviews()
	require.Len(t, reviews, 2)

	first := reviews[0]
	assert.Equal(t, "g-1", first.ID)
	assert.Equal(t, "Alice", first.Author)
	assert.Equal(t, "2025-03-01", first.PublishedAt)
	assert.Equal(t, 4, first.Rating, "Only filled stars count")
	assert.Equal(t, "Friendly crew.\nOn time & clean.", first.Body)
	assert.Equal(t, "Google", first.SourcePlatform)

	second := reviews[1]
	assert.Equal(t, "t-2", second.ID)
	assert.Equal(t, "yesterday", second.PublishedAt, "Relative dates are kept raw")
	assert.Equal(t, 1, second.Rating)
	assert.Equal(t, "Tripadvisor", second.SourcePlatform)
}

func TestCollectReviewsAcrossSnapshots(t *testing.T) {
	s := newTestTrustindexScraper()
	set := newReviewSet()

	added, err := s.collectReviews(trustindexWidgetHTML, set)
	require.NoError(t, err)
	require.Equal(t, 2, added)

	// A second snapshot repeats the old blocks and brings one new review
	grown := strings.Replace(trustindexWidgetHTML, "</body>",
		`<div class="review source-Facebook" data-id="f-3"><div class="ti-name">Carol</div></div></body>`, 1)

	added, err = s.collectReviews(grown, set)
	require.NoError(t, err)

	assert.Equal(t, 1, added, "Only the newly appeared review should be added")
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "f-3", set.Reviews()[2].ID)
}

func TestParseTrustindexBlockRequiresID(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="review"><div class="ti-name">Anonymous</div></div>`))
	require.NoError(t, err)

	_, ok := parseTrustindexBlock(doc.Find("div.review"))
	assert.False(t, ok)
}

func TestParseTrustindexBlockMissingFieldsDegrade(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="review" data-id="x-1"></div>`))
	require.NoError(t, err)

	review, ok := parseTrustindexBlock(doc.Find("div.review"))
	require.True(t, ok)

	assert.Equal(t, "x-1", review.ID)
	assert.Empty(t, review.Author)
	assert.Empty(t, review.Body)
	assert.Equal(t, 0, review.Rating)
	assert.Equal(t, "Unknown", review.SourcePlatform)
}

func TestNormalizeTrustindexDate(t *testing.T) {
	assert.Equal(t, "2025-03-01", normalizeTrustindexDate("2025.03.01"))
	assert.Equal(t, "2 weeks ago", normalizeTrustindexDate("2 weeks ago"))
	assert.Equal(t, "", normalizeTrustindexDate(""))
}

func TestCountReviewNodesJS(t *testing.T) {
	expr := countReviewNodesJS()
	assert.Contains(t, expr, "querySelectorAll")
	assert.Contains(t, expr, trustindexReviewSelector)
}

func TestJSClickExpr(t *testing.T) {
	expr := jsClickExpr(trustindexMoreSelector)
	assert.Contains(t, expr, trustindexMoreSelector)
	assert.Contains(t, expr, "click()")
}
