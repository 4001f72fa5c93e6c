package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"airline-review-worker/config"
	"airline-review-worker/helpers"
	"airline-review-worker/logger"
	serrors "airline-review-worker/pkg/errors"
	"airline-review-worker/services/cache"
)

// CSS selectors for the Trustindex review widget
const (
	trustindexReviewSelector = "div.review"
	trustindexMoreSelector   = "#next-button > a.page-link"
)

// Interaction timeouts for the load-more loop
const (
	trustindexClickTimeout = 15 * time.Second
	trustindexGrowTimeout  = 20 * time.Second
)

// TrustindexScraper extracts reviews from the client-rendered Trustindex
// widget. It drives a headless browser: load the page, click the "More"
// button until it disappears or stops producing new reviews, and parse the
// accumulated div.review blocks from DOM snapshots.
type TrustindexScraper struct {
	BaseScraper
	MaxLoads  int
	Headless  bool
	UserAgent string
	MinWait   time.Duration
	MaxWait   time.Duration
}

// NewTrustindexScraper creates a new Trustindex scraper
func NewTrustindexScraper(cfg config.Config, cacheSvc cache.CacheService) *TrustindexScraper {
	return &TrustindexScraper{
		BaseScraper: BaseScraper{
			Name:      "TrustindexScraper",
			Source:    SourceTrustindex,
			URL:       cfg.TrustindexURL,
			CacheKey:  "trustindex_rate_limited",
			CacheSvc:  cacheSvc,
			BlockTime: cfg.BlockTime,
		},
		MaxLoads:  cfg.TrustindexMaxLoads,
		Headless:  cfg.Headless,
		UserAgent: cfg.UserAgent,
		MinWait:   cfg.MinFetchWait,
		MaxWait:   cfg.MaxFetchWait,
	}
}

// FetchReviews drives the browser session and returns the unique reviews in
// first-seen order.
func (s *TrustindexScraper) FetchReviews(ctx context.Context) ([]Review, error) {
	log := logger.ForScraper(s.Name)

	allocCtx, cancelAlloc := newBrowserAllocator(ctx, s.Headless, s.UserAgent)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	set := newReviewSet()

	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(s.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return nil, serrors.NewBrowser(s.Source, "failed to load page", err)
	}
	log.Info().Str("url", s.URL).Msg("Page loaded")

	added, err := s.collectReviews(html, set)
	if err != nil {
		return nil, err
	}
	log.Info().Int("new_reviews", added).Msg("Extracted initial reviews")

	for loop := 0; loop < s.MaxLoads; loop++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("Context cancelled, stopping load-more loop")
			break
		}

		var before int
		if err := chromedp.Run(tabCtx, chromedp.Evaluate(countReviewNodesJS(), &before)); err != nil {
			log.Warn().Err(err).Msg("Failed to count review nodes, stopping")
			break
		}

		log.Debug().Int("loop", loop+1).Int("max_loops", s.MaxLoads).Msg("Clicking More button")
		if err := s.clickMore(tabCtx); err != nil {
			log.Info().Err(err).Msg("More button not clickable, assuming end of reviews")
			break
		}

		if err := s.waitForGrowth(tabCtx, before); err != nil {
			log.Info().Msg("Review count did not increase after click, assuming end of reviews")
			break
		}

		// Let late-arriving blocks settle before snapshotting
		settle := helpers.RandomDelay(500*time.Millisecond, time.Second)
		if err := chromedp.Run(tabCtx,
			chromedp.Sleep(settle),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		); err != nil {
			log.Warn().Err(err).Msg("Failed to snapshot page, stopping")
			break
		}

		added, err := s.collectReviews(html, set)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to parse snapshot, stopping")
			break
		}
		if added == 0 {
			log.Info().Msg("No new unique reviews after click, stopping")
			break
		}

		log.Info().
			Int("loop", loop+1).
			Int("new_reviews", added).
			Int("total_reviews", set.Len()).
			Msg("Extracted newly loaded reviews")

		if err := chromedp.Run(tabCtx, chromedp.Sleep(helpers.RandomDelay(s.MinWait, s.MaxWait))); err != nil {
			break
		}
	}

	return set.Reviews(), nil
}

// clickMore scrolls the More button into view and clicks it, falling back to
// a JavaScript click when the direct click is intercepted.
func (s *TrustindexScraper) clickMore(ctx context.Context) error {
	clickCtx, cancel := context.WithTimeout(ctx, trustindexClickTimeout)
	defer cancel()

	err := chromedp.Run(clickCtx,
		chromedp.ScrollIntoView(trustindexMoreSelector, chromedp.ByQuery),
		chromedp.Click(trustindexMoreSelector, chromedp.ByQuery),
	)
	if err == nil {
		return nil
	}

	jsCtx, cancelJS := context.WithTimeout(ctx, trustindexClickTimeout)
	defer cancelJS()

	var clicked bool
	jsErr := chromedp.Run(jsCtx, chromedp.Evaluate(jsClickExpr(trustindexMoreSelector), &clicked))
	if jsErr != nil || !clicked {
		return err
	}
	return nil
}

// waitForGrowth polls until the number of review nodes exceeds the pre-click
// count. A timeout means the click produced nothing.
func (s *TrustindexScraper) waitForGrowth(ctx context.Context, before int) error {
	pollCtx, cancel := context.WithTimeout(ctx, trustindexGrowTimeout)
	defer cancel()

	var grown bool
	expr := fmt.Sprintf("document.querySelectorAll(%q).length > %d", trustindexReviewSelector, before)
	return chromedp.Run(pollCtx, chromedp.Poll(expr, &grown))
}

// collectReviews parses a DOM snapshot and feeds every review block through
// the dedupe set. It returns the number of newly added reviews.
func (s *TrustindexScraper) collectReviews(html string, set *reviewSet) (int, error) {
	doc, err := s.createDocument(strings.NewReader(html))
	if err != nil {
		return 0, err
	}

	added := 0
	doc.Find(trustindexReviewSelector).Each(func(_ int, sel *goquery.Selection) {
		review, ok := parseTrustindexBlock(sel)
		if ok && set.Add(review) {
			added++
		}
	})
	return added, nil
}

// parseTrustindexBlock parses a single div.review block. Blocks without a
// data-id are skipped; all other fields degrade to zero values.
func parseTrustindexBlock(sel *goquery.Selection) (Review, bool) {
	id, ok := sel.Attr("data-id")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return Review{}, false
	}

	review := Review{
		ID:             id,
		Author:         strings.TrimSpace(sel.Find("div.ti-name").Text()),
		PublishedAt:    normalizeTrustindexDate(strings.TrimSpace(sel.Find("div.ti-date").Text())),
		Rating:         sel.Find("div.ti-stars span.ti-star.f").Length(),
		SourcePlatform: trustindexPlatform(sel),
	}

	if content := sel.Find("div.ti-review-content"); content.Length() > 0 {
		if fragment, err := content.Html(); err == nil {
			review.Body = helpers.HTMLToText(fragment)
		}
	}

	return review, true
}

// trustindexPlatform extracts the embedded platform from the block's
// source-* class (Trustindex aggregates reviews from several platforms)
func trustindexPlatform(sel *goquery.Selection) string {
	classes, _ := sel.Attr("class")
	for _, class := range strings.Fields(classes) {
		if strings.HasPrefix(class, "source-") {
			return strings.TrimPrefix(class, "source-")
		}
	}
	return "Unknown"
}

// normalizeTrustindexDate converts the widget's "2006.01.02" dates to ISO.
// Unparseable values are kept raw.
func normalizeTrustindexDate(value string) string {
	t, err := time.Parse("2006.01.02", value)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}

func countReviewNodesJS() string {
	return fmt.Sprintf("document.querySelectorAll(%q).length", trustindexReviewSelector)
}

func jsClickExpr(selector string) string {
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.scrollIntoView({block: 'center'});
		el.click();
		return true;
	})()`, selector)
}
