package scraper

import (
	"context"

	"github.com/chromedp/chromedp"
)

// newBrowserAllocator creates a Chrome exec allocator context with the flags
// the review widgets tolerate (headless works, but automation hints must be
// hidden or the widget serves a degraded page).
func newBrowserAllocator(parent context.Context, headless bool, userAgent string) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1920, 1200),
	)
	return chromedp.NewExecAllocator(parent, opts...)
}
