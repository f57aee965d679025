package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTitle     = "Untitled"
	defaultDateStamp = "00000000"
)

// datePattern matches the platform's localized publication date, e.g.
// "2023年5月3日". Month and day may be one or two digits.
var datePattern = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)

// extractRecord produces an ArticleRecord from a rendered detail page. Each
// field falls back through its selector list in priority order; the lists
// absorb markup drift between platform versions. Missing matches degrade to
// defaults rather than failing.
func extractRecord(html string, titleSelectors, contentSelectors []string) (*ArticleRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing article page: %w", err)
	}

	return &ArticleRecord{
		Title:         firstText(doc, titleSelectors),
		DateStamp:     extractDateStamp(doc.Text()),
		ContentMarkup: firstMarkup(doc, contentSelectors),
	}, nil
}

// firstText returns the first non-empty trimmed text across the ordered
// selector list. A selector that matches an empty element does not stop the
// search.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(sel.First().Text()); text != "" {
			return text
		}
	}
	return defaultTitle
}

// firstMarkup returns the first non-empty inner HTML across the ordered
// selector list, or the empty string when nothing matches.
func firstMarkup(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		markup, err := sel.First().Html()
		if err != nil {
			continue
		}
		if strings.TrimSpace(markup) != "" {
			return markup
		}
	}
	return ""
}

// extractDateStamp scans page text for the localized date phrase and folds it
// into YYYYMMDD with zero-padded month and day.
func extractDateStamp(text string) string {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return defaultDateStamp
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return fmt.Sprintf("%04d%02d%02d", year, month, day)
}
