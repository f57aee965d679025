package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// fetchFeedRefs pulls ArticleRefs from the author's RSS/Atom feed. The
// platform's feeds only expose recent posts, so the result supplements the
// listing crawl rather than replacing it; the upside is that feed entries
// carry real titles, which makes the pre-fetch skip accurate for them.
func fetchFeedRefs(ctx context.Context, feedURL, prefix string) ([]ArticleRef, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}

	refs := make([]ArticleRef, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" || !strings.HasPrefix(item.Link, prefix) {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = defaultTitle
		}
		refs = append(refs, ArticleRef{URL: item.Link, HintTitle: title})
	}
	return refs, nil
}

// mergeRefs concatenates ref lists, keeping the first occurrence of each URL.
func mergeRefs(lists ...[]ArticleRef) []ArticleRef {
	seen := make(map[string]bool)
	merged := make([]ArticleRef, 0)
	for _, list := range lists {
		for _, ref := range list {
			if seen[ref.URL] {
				continue
			}
			seen[ref.URL] = true
			merged = append(merged, ref)
		}
	}
	return merged
}
