package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxLoadMoreIterations bounds the pagination loop. The loop normally ends
// when the control disappears; the cap guards against a hidden-but-present
// control keeping it alive forever.
const maxLoadMoreIterations = 500

// LoadMoreStuckError reports a load-more control that never disappeared.
type LoadMoreStuckError struct {
	Iterations int
}

func (e *LoadMoreStuckError) Error() string {
	return fmt.Sprintf("load-more control still present after %d iterations", e.Iterations)
}

// expandListing repeatedly triggers the load-more control until it disappears,
// pausing after each click so newly revealed content can render. The document
// is mutated in place; scanArticleLinks re-reads it afterwards.
func expandListing(ctx context.Context, r Renderer, label string, settle time.Duration) error {
	for i := 0; i < maxLoadMoreIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		clicked, err := r.ClickByText(ctx, label)
		if err != nil {
			return fmt.Errorf("triggering load more: %w", err)
		}
		if !clicked {
			debugLog("listing fully expanded after %d load-more clicks", i)
			return nil
		}
		if err := r.Sleep(ctx, settle); err != nil {
			return err
		}
	}
	return &LoadMoreStuckError{Iterations: maxLoadMoreIterations}
}

// scanArticleLinks collects anchors under the author's article prefix into an
// ordered, URL-deduplicated ref list. Relative hrefs are resolved against the
// prefix host.
func scanArticleLinks(html, prefix string) ([]ArticleRef, error) {
	base, err := url.Parse(prefix)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid article prefix %q", prefix)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing listing page: %w", err)
	}

	seen := make(map[string]bool)
	refs := make([]ArticleRef, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}

		linkURL, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(linkURL)
		absolute.Fragment = ""
		target := absolute.String()

		if !strings.HasPrefix(target, prefix) {
			return
		}
		if seen[target] {
			return
		}
		seen[target] = true
		refs = append(refs, ArticleRef{URL: target, HintTitle: hintTitle(s)})
	})

	return refs, nil
}

// hintTitle derives a best-effort label for an anchor: accessible name first,
// then the title attribute, then trimmed visible text.
func hintTitle(s *goquery.Selection) string {
	if v, ok := s.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v, ok := s.Attr("title"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if t := strings.TrimSpace(s.Text()); t != "" {
		return t
	}
	return defaultTitle
}

// discoverArticles runs full discovery: feed entries first when a feed is
// configured, then the expanded listing page. Both go through the same
// order-preserving dedup.
func discoverArticles(ctx context.Context, r Renderer, settings *Settings) ([]ArticleRef, error) {
	var feedRefs []ArticleRef
	if settings.FeedURL != "" {
		refs, err := fetchFeedRefs(ctx, settings.FeedURL, settings.ArticlePrefix)
		if err != nil {
			// The feed only supplements the crawl; a broken feed is not fatal.
			log.Printf("Warning: feed discovery failed: %v", err)
		} else {
			feedRefs = refs
		}
	}

	if err := r.Navigate(ctx, settings.AuthorURL); err != nil {
		return nil, fmt.Errorf("loading listing page %s: %w", settings.AuthorURL, err)
	}

	settle := time.Duration(settings.SettleSeconds) * time.Second
	if err := expandListing(ctx, r, settings.LoadMoreLabel, settle); err != nil {
		var stuck *LoadMoreStuckError
		if !errors.As(err, &stuck) {
			return nil, err
		}
		// Whatever was revealed is still usable.
		log.Printf("Warning: %v; continuing with revealed links", stuck)
	}

	html, err := r.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshotting listing page: %w", err)
	}

	crawled, err := scanArticleLinks(html, settings.ArticlePrefix)
	if err != nil {
		return nil, err
	}

	refs := mergeRefs(feedRefs, crawled)
	log.Printf("Discovered %d articles (%d via feed)", len(refs), len(feedRefs))
	return refs, nil
}
